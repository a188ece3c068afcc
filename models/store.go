package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// StoredListing is a Listing as it comes back out of MongoDB, with the
// store-internal document id attached.
type StoredListing struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Listing `bson:",inline"`
}

// RoomStats is one bucket of the per-room aggregation: the average
// normalized rental price and listing count for a given room count.
type RoomStats struct {
	Rooms        int     `bson:"_id" json:"rooms"`
	AvgRentalUSD float64 `bson:"avg_rental_price_usd" json:"avg_rental_price_usd"`
	Count        int     `bson:"count" json:"count"`
}

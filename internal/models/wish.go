package models

import "time"

// Wish is one accepted submission as persisted by a WishStore.
type Wish struct {
	ID        string    `bson:"_id" json:"id"`
	Wish      string    `bson:"wish" json:"wish"`
	Category  string    `bson:"category" json:"category"`
	Timeframe string    `bson:"timeframe" json:"timeframe"`
	Intensity int       `bson:"intensity" json:"intensity"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// WishInput holds the raw form fields exactly as submitted.
type WishInput struct {
	Wish      string
	Category  string
	Timeframe string
	Intensity string
	Name      string
	Email     string
}

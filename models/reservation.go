package models

import "time"

// Reservation is a confirmed flight booking handed to the ledger for
// durable storage. It is not retained in the session afterwards.
type Reservation struct {
	ID                 string    `bson:"id" json:"id"`
	TravelerLastName   string    `bson:"travelerLastName" json:"travelerLastName"`
	TravelerFirstName  string    `bson:"travelerFirstName" json:"travelerFirstName"`
	Origin             string    `bson:"origin" json:"origin"`
	Destination        string    `bson:"destination" json:"destination"`
	DepartureTimestamp string    `bson:"departureAt" json:"departureAt"`
	ArrivalTimestamp   string    `bson:"arrivalAt" json:"arrivalAt"`
	PartySize          int       `bson:"partySize" json:"partySize"`
	PriceLabel         string    `bson:"price" json:"price"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}

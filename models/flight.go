package models

// FlightQuery is a normalized flight search request.
// Origin and Destination are 3-letter uppercase IATA codes and must differ;
// DepartureDate is a valid YYYY-MM-DD calendar date.
type FlightQuery struct {
	Origin        string `json:"originLocationCode"`
	Destination   string `json:"destinationLocationCode"`
	DepartureDate string `json:"departureDate"`
	Adults        int    `json:"adults"`
	MaxResults    int    `json:"max"`
}

// FlightPoint is one end of a flight leg.
type FlightPoint struct {
	Iata string `json:"iata"`
	At   string `json:"at"`
}

// FlightOffer is the trimmed-down offer shape sent to the frontend and
// held in the session until booked or replaced. PriceValue is the parsed
// price used for ranking only; unparsable prices rank last via a sentinel.
type FlightOffer struct {
	ID         string      `json:"id"`
	Airline    string      `json:"airline"`
	Departure  FlightPoint `json:"departure"`
	Arrival    FlightPoint `json:"arrival"`
	Price      string      `json:"price"`
	Currency   string      `json:"currency"`
	Stops      int         `json:"stops"`
	PriceValue float64     `json:"-"`
}

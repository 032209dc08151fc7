package models

// HotelQuery is a normalized hotel search request.
// CheckIn must be strictly before CheckOut, both YYYY-MM-DD.
type HotelQuery struct {
	CityName string `json:"city_name"`
	CheckIn  string `json:"checkin"`
	CheckOut string `json:"checkout"`
	Adults   int    `json:"adults"`
	Rooms    int    `json:"rooms"`
}

// CheapestOffer is the single cheapest offer retained per hotel.
type CheapestOffer struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// RoomDetails carries the optional room metadata of the cheapest offer.
type RoomDetails struct {
	Category           string `json:"category,omitempty"`
	Beds               int    `json:"beds,omitempty"`
	BedType            string `json:"bedType,omitempty"`
	BoardType          string `json:"boardType,omitempty"`
	CancellationPolicy string `json:"cancellationPolicy,omitempty"`
	PaymentType        string `json:"paymentType,omitempty"`
	Description        string `json:"description,omitempty"`
}

// HotelOffer is the trimmed-down hotel shape sent to the frontend.
// Cheapest is nil when no offer of the hotel could be parsed; such hotels
// still appear in results, ranked last.
type HotelOffer struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	CityCode    string         `json:"cityCode"`
	Cheapest    *CheapestOffer `json:"cheapestOffer,omitempty"`
	RoomDetails *RoomDetails   `json:"roomDetails,omitempty"`
	PriceValue  float64        `json:"-"`
}

// RoomSummary is the follow-up payload cached in the session while the
// assistant waits for a yes/no on showing room details.
type RoomSummary struct {
	HotelName string      `json:"name"`
	Details   RoomDetails `json:"roomDetails"`
}

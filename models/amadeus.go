package models

// Raw Amadeus payload shapes, decoded as-is from the provider and consumed
// by the result formatter. Only the fields the formatter reads are declared.

// RawFlightOffer mirrors one entry of v2/shopping/flight-offers "data".
type RawFlightOffer struct {
	ID                     string         `json:"id"`
	ValidatingAirlineCodes []string       `json:"validatingAirlineCodes"`
	Itineraries            []RawItinerary `json:"itineraries"`
	Price                  *RawPrice      `json:"price"`
}

type RawItinerary struct {
	Segments []RawSegment `json:"segments"`
}

type RawSegment struct {
	Departure RawFlightPoint `json:"departure"`
	Arrival   RawFlightPoint `json:"arrival"`
}

type RawFlightPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type RawPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// RawHotelEntry mirrors one entry of v3/shopping/hotel-offers "data":
// one hotel with its list of priced offers.
type RawHotelEntry struct {
	Hotel  RawHotel       `json:"hotel"`
	Offers []RawHotelRoom `json:"offers"`
}

type RawHotel struct {
	HotelID  string `json:"hotelId"`
	Name     string `json:"name"`
	CityCode string `json:"cityCode"`
}

type RawHotelRoom struct {
	ID           string       `json:"id"`
	CheckInDate  string       `json:"checkInDate"`
	CheckOutDate string       `json:"checkOutDate"`
	BoardType    string       `json:"boardType"`
	Room         *RawRoom     `json:"room"`
	Price        *RawPrice    `json:"price"`
	Policies     *RawPolicies `json:"policies"`
}

type RawRoom struct {
	TypeEstimated *RawRoomTypeEstimated `json:"typeEstimated"`
	Description   *RawRoomDescription   `json:"description"`
}

type RawRoomTypeEstimated struct {
	Category string `json:"category"`
	Beds     int    `json:"beds"`
	BedType  string `json:"bedType"`
}

type RawRoomDescription struct {
	Text string `json:"text"`
}

type RawPolicies struct {
	PaymentType   string            `json:"paymentType"`
	Cancellations []RawCancellation `json:"cancellations"`
}

type RawCancellation struct {
	Type     string `json:"type"`
	Deadline string `json:"deadline"`
}

package intelligence

import "context"

// Intent is the fixed set of things a user turn can ask for.
type Intent string

const (
	IntentSearch  Intent = "search"
	IntentBook    Intent = "book"
	IntentHotel   Intent = "hotel"
	IntentAdvice  Intent = "advice"
	IntentUnknown Intent = "unknown"
)

// FlightFields are the raw flight fields the model extracted in the same
// pass as classification. Zero values mean "not extracted".
type FlightFields struct {
	Origin        string `json:"originLocationCode"`
	Destination   string `json:"destinationLocationCode"`
	DepartureDate string `json:"departureDate"`
	Adults        int    `json:"adults"`
}

// HotelFields are the raw hotel fields from the dedicated extraction call.
type HotelFields struct {
	CityName string `json:"city_name"`
	CheckIn  string `json:"checkin"`
	CheckOut string `json:"checkout"`
	Adults   int    `json:"adults"`
	Rooms    int    `json:"rooms"`
}

// Resolution is the outcome of classifying one utterance. FromModel is
// false when the lexical fallback produced it.
type Resolution struct {
	Intent            Intent
	Flight            FlightFields
	FlightIndex       int
	TravelerFirstName string
	TravelerLastName  string
	FromModel         bool
}

// IntentResolver classifies an utterance. It never fails: any model error
// degrades to the lexical fallback inside the implementation.
type IntentResolver interface {
	Resolve(ctx context.Context, utterance string) Resolution
}

// QueryExtractor runs the dedicated field-extraction calls.
type QueryExtractor interface {
	ExtractFlight(ctx context.Context, utterance string) (FlightFields, error)
	ExtractHotel(ctx context.Context, utterance string) (HotelFields, error)
}

// Advisor answers free-form travel-advice turns.
type Advisor interface {
	Suggest(ctx context.Context, utterance string) (string, error)
}

package dialogue

import (
	"context"
	"regexp"
	"strings"
	"time"

	"wingman/models"
	"wingman/services/intelligence"
)

var (
	isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	iataPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Normalizer coerces raw extracted fields into canonical queries. Both
// entry points are idempotent: well-formed input always yields the same
// canonical query.
type Normalizer struct {
	Extractor intelligence.QueryExtractor
}

// FlightQuery normalizes a flight search. Fields the intent model already
// extracted are preferred; the dedicated extraction call runs only when
// they are incomplete.
func (n *Normalizer) FlightQuery(ctx context.Context, utterance string, fields intelligence.FlightFields) (models.FlightQuery, error) {
	q, err := normalizeFlightFields(fields)
	if err == nil {
		return q, nil
	}
	if n.Extractor == nil {
		return models.FlightQuery{}, err
	}

	extracted, exErr := n.Extractor.ExtractFlight(ctx, utterance)
	if exErr != nil {
		// Extraction itself failed; surface the original checklist.
		return models.FlightQuery{}, err
	}
	return normalizeFlightFields(extracted)
}

func normalizeFlightFields(f intelligence.FlightFields) (models.FlightQuery, error) {
	origin := strings.ToUpper(strings.TrimSpace(f.Origin))
	destination := strings.ToUpper(strings.TrimSpace(f.Destination))
	date := strings.TrimSpace(f.DepartureDate)

	var missing []string
	if !iataPattern.MatchString(origin) {
		missing = append(missing, "originLocationCode")
	}
	if !iataPattern.MatchString(destination) {
		missing = append(missing, "destinationLocationCode")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		missing = append(missing, "departureDate")
	}
	if len(missing) > 0 {
		return models.FlightQuery{}, NewIncompleteQueryError(missing...)
	}
	if origin == destination {
		return models.FlightQuery{}, &IncompleteQueryError{Reason: "origin and destination are identical"}
	}

	adults := f.Adults
	if adults < 1 {
		adults = 1
	}

	return models.FlightQuery{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: date,
		Adults:        adults,
		MaxResults:    5,
	}, nil
}

// HotelQuery normalizes a hotel search from the raw utterance. The
// utterance must carry at least two ISO-date-shaped substrings before any
// extraction call is made; an obviously underspecified turn costs no
// model call.
func (n *Normalizer) HotelQuery(ctx context.Context, utterance string) (models.HotelQuery, error) {
	if len(isoDatePattern.FindAllString(utterance, -1)) < 2 {
		return models.HotelQuery{}, NewIncompleteQueryError("checkin", "checkout")
	}

	fields, err := n.Extractor.ExtractHotel(ctx, utterance)
	if err != nil {
		return models.HotelQuery{}, err
	}
	return normalizeHotelFields(fields)
}

func normalizeHotelFields(f intelligence.HotelFields) (models.HotelQuery, error) {
	city := strings.TrimSpace(f.CityName)
	checkIn := strings.TrimSpace(f.CheckIn)
	checkOut := strings.TrimSpace(f.CheckOut)

	var missing []string
	if city == "" {
		missing = append(missing, "city_name")
	}
	in, errIn := time.Parse("2006-01-02", checkIn)
	if errIn != nil {
		missing = append(missing, "checkin")
	}
	out, errOut := time.Parse("2006-01-02", checkOut)
	if errOut != nil {
		missing = append(missing, "checkout")
	}
	if len(missing) > 0 {
		return models.HotelQuery{}, NewIncompleteQueryError(missing...)
	}
	if !in.Before(out) {
		return models.HotelQuery{}, &IncompleteQueryError{Reason: "checkin must be before checkout"}
	}

	adults := f.Adults
	if adults < 1 {
		adults = 2
	}
	rooms := f.Rooms
	if rooms < 1 {
		rooms = 1
	}

	return models.HotelQuery{
		CityName: city,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Adults:   adults,
		Rooms:    rooms,
	}, nil
}

package dialogue

import (
	"context"
	"errors"
	"testing"

	"wingman/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingExtractor records how often each extraction call runs.
type countingExtractor struct {
	flightCalls int
	hotelCalls  int
	flight      intelligence.FlightFields
	hotel       intelligence.HotelFields
	err         error
}

func (c *countingExtractor) ExtractFlight(ctx context.Context, utterance string) (intelligence.FlightFields, error) {
	c.flightCalls++
	return c.flight, c.err
}

func (c *countingExtractor) ExtractHotel(ctx context.Context, utterance string) (intelligence.HotelFields, error) {
	c.hotelCalls++
	return c.hotel, c.err
}

func TestFlightQueryPrefersModelFields(t *testing.T) {
	ext := &countingExtractor{}
	n := &Normalizer{Extractor: ext}

	q, err := n.FlightQuery(context.Background(), "vol TLS CDG 2026-02-10", intelligence.FlightFields{
		Origin: "tls", Destination: "cdg", DepartureDate: "2026-02-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "TLS", q.Origin)
	assert.Equal(t, "CDG", q.Destination)
	assert.Equal(t, "2026-02-10", q.DepartureDate)
	assert.Equal(t, 1, q.Adults)
	assert.Equal(t, 5, q.MaxResults)
	assert.Zero(t, ext.flightCalls, "complete model fields must not trigger extraction")
}

func TestFlightQueryFallsBackToExtractor(t *testing.T) {
	ext := &countingExtractor{flight: intelligence.FlightFields{
		Origin: "TLS", Destination: "CDG", DepartureDate: "2026-02-10", Adults: 2,
	}}
	n := &Normalizer{Extractor: ext}

	q, err := n.FlightQuery(context.Background(), "vol TLS CDG 2026-02-10", intelligence.FlightFields{})
	require.NoError(t, err)
	assert.Equal(t, 1, ext.flightCalls)
	assert.Equal(t, 2, q.Adults)
}

func TestFlightQueryIncompleteFields(t *testing.T) {
	tests := []struct {
		name   string
		fields intelligence.FlightFields
	}{
		{name: "missing origin", fields: intelligence.FlightFields{Destination: "CDG", DepartureDate: "2026-02-10"}},
		{name: "bad destination", fields: intelligence.FlightFields{Origin: "TLS", Destination: "Paris", DepartureDate: "2026-02-10"}},
		{name: "malformed date", fields: intelligence.FlightFields{Origin: "TLS", Destination: "CDG", DepartureDate: "10/02/2026"}},
		{name: "impossible date", fields: intelligence.FlightFields{Origin: "TLS", Destination: "CDG", DepartureDate: "2026-02-31"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &countingExtractor{err: errors.New("model down")}
			n := &Normalizer{Extractor: ext}

			_, err := n.FlightQuery(context.Background(), "peu importe", tt.fields)
			var incomplete *IncompleteQueryError
			require.ErrorAs(t, err, &incomplete)
		})
	}
}

func TestFlightQueryRejectsIdenticalEndpoints(t *testing.T) {
	n := &Normalizer{}
	_, err := n.FlightQuery(context.Background(), "", intelligence.FlightFields{
		Origin: "TLS", Destination: "TLS", DepartureDate: "2026-02-10",
	})
	var incomplete *IncompleteQueryError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Reason, "identical")
}

func TestFlightQueryIsIdempotent(t *testing.T) {
	n := &Normalizer{}
	fields := intelligence.FlightFields{Origin: "TLS", Destination: "CDG", DepartureDate: "2026-02-10"}

	q1, err := n.FlightQuery(context.Background(), "", fields)
	require.NoError(t, err)
	q2, err := n.FlightQuery(context.Background(), "", fields)
	require.NoError(t, err)
	assert.Equal(t, q1, q2)
}

func TestHotelQueryRequiresTwoDatesBeforeExtraction(t *testing.T) {
	ext := &countingExtractor{}
	n := &Normalizer{Extractor: ext}

	tests := []string{
		"hotel Toulouse",
		"hotel Toulouse le 2026-03-01",
	}
	for _, utterance := range tests {
		_, err := n.HotelQuery(context.Background(), utterance)
		var incomplete *IncompleteQueryError
		require.ErrorAs(t, err, &incomplete)
	}
	assert.Zero(t, ext.hotelCalls, "underspecified turns must not cost an extraction call")
}

func TestHotelQueryNormalizesWithDefaults(t *testing.T) {
	ext := &countingExtractor{hotel: intelligence.HotelFields{
		CityName: " Toulouse ", CheckIn: "2026-03-01", CheckOut: "2026-03-05",
	}}
	n := &Normalizer{Extractor: ext}

	q, err := n.HotelQuery(context.Background(), "hotel Toulouse du 2026-03-01 au 2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, 1, ext.hotelCalls)
	assert.Equal(t, "Toulouse", q.CityName)
	assert.Equal(t, 2, q.Adults)
	assert.Equal(t, 1, q.Rooms)
}

func TestHotelQueryRejectsInvertedDates(t *testing.T) {
	ext := &countingExtractor{hotel: intelligence.HotelFields{
		CityName: "Toulouse", CheckIn: "2026-03-05", CheckOut: "2026-03-01",
	}}
	n := &Normalizer{Extractor: ext}

	_, err := n.HotelQuery(context.Background(), "hotel Toulouse du 2026-03-05 au 2026-03-01")
	var incomplete *IncompleteQueryError
	require.ErrorAs(t, err, &incomplete)
}

func TestHotelQueryPropagatesExtractorFailure(t *testing.T) {
	ext := &countingExtractor{err: errors.New("model down")}
	n := &Normalizer{Extractor: ext}

	_, err := n.HotelQuery(context.Background(), "hotel Toulouse du 2026-03-01 au 2026-03-05")
	require.Error(t, err)
	var incomplete *IncompleteQueryError
	assert.False(t, errors.As(err, &incomplete))
}

package travel

import (
	"context"
	"net/url"
	"strconv"

	"wingman/models"
)

const flightOffersPath = "/v2/shopping/flight-offers"

type flightOffersResponse struct {
	Data []models.RawFlightOffer `json:"data"`
}

// SearchFlights queries one-way flight offers for the normalized query and
// returns the raw provider payload for the formatter to rank.
func (c *Client) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.RawFlightOffer, error) {
	params := url.Values{
		"originLocationCode":      {q.Origin},
		"destinationLocationCode": {q.Destination},
		"departureDate":           {q.DepartureDate},
		"adults":                  {strconv.Itoa(q.Adults)},
		"max":                     {strconv.Itoa(q.MaxResults)},
	}

	var resp flightOffersResponse
	if err := c.getJSON(ctx, flightOffersPath, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

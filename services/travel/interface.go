package travel

import (
	"context"

	"wingman/models"
)

// FlightSearcher is the flight-search collaborator consumed by the
// dialogue controller. Results are provider-shaped, pre-formatting.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.RawFlightOffer, error)
}

// HotelSearcher is the hotel-search collaborator. Implementations resolve
// the city name to a city code before querying offers.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.RawHotelEntry, error)
}

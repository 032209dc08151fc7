package dialogue

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"wingman/models"
)

// priceSentinel ranks offers with unparsable prices last without failing
// the batch.
const priceSentinel = math.MaxFloat64

func parsePrice(total string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(total), 64)
	if err != nil {
		return priceSentinel
	}
	return v
}

// FormatFlights turns the raw provider payload into the light offer shape
// the frontend renders. Malformed entries (no itinerary, no segments, no
// price) are dropped rather than failing the batch. Only the first
// itinerary is considered; departure and arrival come from its first and
// last segment. The result is sorted ascending by price, cheapest first.
func FormatFlights(raw []models.RawFlightOffer) []models.FlightOffer {
	out := make([]models.FlightOffer, 0, len(raw))
	for _, f := range raw {
		if len(f.Itineraries) == 0 || len(f.Itineraries[0].Segments) == 0 || f.Price == nil {
			continue
		}
		segments := f.Itineraries[0].Segments

		var airline string
		if len(f.ValidatingAirlineCodes) > 0 {
			airline = f.ValidatingAirlineCodes[0]
		}

		stops := len(segments) - 1
		if stops < 0 {
			stops = 0
		}

		out = append(out, models.FlightOffer{
			ID:      f.ID,
			Airline: airline,
			Departure: models.FlightPoint{
				Iata: segments[0].Departure.IataCode,
				At:   segments[0].Departure.At,
			},
			Arrival: models.FlightPoint{
				Iata: segments[len(segments)-1].Arrival.IataCode,
				At:   segments[len(segments)-1].Arrival.At,
			},
			Price:      f.Price.Total,
			Currency:   f.Price.Currency,
			Stops:      stops,
			PriceValue: parsePrice(f.Price.Total),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriceValue < out[j].PriceValue
	})
	return out
}

// FormatHotels keeps the single cheapest offer per hotel (ties broken by
// first-seen order) and extracts room metadata when present. A hotel with
// no parsable offer still appears, ranked last. The result is sorted
// ascending by the cheapest offer's price.
func FormatHotels(raw []models.RawHotelEntry) []models.HotelOffer {
	out := make([]models.HotelOffer, 0, len(raw))
	for _, entry := range raw {
		offer := models.HotelOffer{
			ID:         entry.Hotel.HotelID,
			Name:       entry.Hotel.Name,
			CityCode:   entry.Hotel.CityCode,
			PriceValue: priceSentinel,
		}

		for _, room := range entry.Offers {
			if room.Price == nil {
				continue
			}
			value := parsePrice(room.Price.Total)
			if value >= offer.PriceValue {
				continue
			}
			offer.PriceValue = value
			offer.Cheapest = &models.CheapestOffer{
				Total:    room.Price.Total,
				Currency: room.Price.Currency,
				CheckIn:  room.CheckInDate,
				CheckOut: room.CheckOutDate,
			}
			offer.RoomDetails = roomDetails(room)
		}

		out = append(out, offer)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriceValue < out[j].PriceValue
	})
	return out
}

// roomDetails pulls the optional room metadata of an offer. Returns nil
// when nothing of interest is present.
func roomDetails(room models.RawHotelRoom) *models.RoomDetails {
	var d models.RoomDetails

	if room.Room != nil {
		if te := room.Room.TypeEstimated; te != nil {
			d.Category = te.Category
			d.Beds = te.Beds
			d.BedType = te.BedType
		}
		if desc := room.Room.Description; desc != nil {
			d.Description = desc.Text
		}
	}
	d.BoardType = room.BoardType
	if room.Policies != nil {
		d.PaymentType = room.Policies.PaymentType
		if len(room.Policies.Cancellations) > 0 {
			c := room.Policies.Cancellations[0]
			if c.Type != "" {
				d.CancellationPolicy = c.Type
			} else if c.Deadline != "" {
				d.CancellationPolicy = "jusqu'au " + c.Deadline
			}
		}
	}

	if d == (models.RoomDetails{}) {
		return nil
	}
	return &d
}

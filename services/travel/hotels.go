package travel

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"wingman/models"
)

const (
	citySearchPath  = "/v1/reference-data/locations"
	hotelListPath   = "/v1/reference-data/locations/hotels/by-city"
	hotelOffersPath = "/v3/shopping/hotel-offers"

	// Offers are priced for the first hotels of the city list only; pricing
	// every hotel of a large city would blow the provider quota.
	maxHotelIDs = 10
)

type citySearchResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
	} `json:"data"`
}

type hotelListResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
	} `json:"data"`
}

type hotelOffersResponse struct {
	Data []models.RawHotelEntry `json:"data"`
}

// cityCode resolves a free-form city name to its IATA city code.
func (c *Client) cityCode(ctx context.Context, cityName string) (string, error) {
	name := strings.TrimSpace(cityName)
	if name == "" {
		return "", fmt.Errorf("empty city name")
	}

	params := url.Values{
		"subType": {"CITY"},
		"keyword": {name},
	}
	var resp citySearchResponse
	if err := c.getJSON(ctx, citySearchPath, params, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].IataCode == "" {
		return "", fmt.Errorf("unknown city: %s", cityName)
	}
	return resp.Data[0].IataCode, nil
}

// SearchHotels resolves the city, lists its hotels and prices the stay for
// the first hotels found. Returns the raw v3 hotel-offers payload.
func (c *Client) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.RawHotelEntry, error) {
	cityCode, err := c.cityCode(ctx, q.CityName)
	if err != nil {
		return nil, err
	}

	var list hotelListResponse
	if err := c.getJSON(ctx, hotelListPath, url.Values{"cityCode": {cityCode}}, &list); err != nil {
		return nil, err
	}

	ids := make([]string, 0, maxHotelIDs)
	for _, h := range list.Data {
		if h.HotelID == "" {
			continue
		}
		ids = append(ids, h.HotelID)
		if len(ids) == maxHotelIDs {
			break
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{
		"hotelIds":     {strings.Join(ids, ",")},
		"checkInDate":  {q.CheckIn},
		"checkOutDate": {q.CheckOut},
		"adults":       {strconv.Itoa(q.Adults)},
		"roomQuantity": {strconv.Itoa(q.Rooms)},
	}
	var resp hotelOffersResponse
	if err := c.getJSON(ctx, hotelOffersPath, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

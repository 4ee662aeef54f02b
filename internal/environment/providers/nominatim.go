package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/greentrack/internal/common"
	"github.com/i474232898/greentrack/internal/environment"
	"github.com/i474232898/greentrack/internal/reference"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// NominatimGeocoder implements environment.Geocoder against the
// OpenStreetMap Nominatim search API, restricted to India.
type NominatimGeocoder struct {
	name      string
	baseURL   string
	userAgent string
	client    *http.Client
	tables    *reference.Tables
}

func NewNominatimGeocoder(client *http.Client, baseURL, userAgent string, tables *reference.Tables) *NominatimGeocoder {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultNominatimURL
	}
	return &NominatimGeocoder{
		name:      "nominatim",
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    client,
		tables:    tables,
	}
}

func (g *NominatimGeocoder) Name() string {
	return g.name
}

// Resolve returns the first search hit for query. Provider ranking is
// trusted as-is.
func (g *NominatimGeocoder) Resolve(ctx context.Context, query string) (environment.ResolvedLocation, error) {
	values := url.Values{}
	values.Set("q", query+", India")
	values.Set("format", "json")
	values.Set("limit", "1")

	header := http.Header{}
	header.Set("User-Agent", g.userAgent)

	var payload []struct {
		Lat         flexFloat `json:"lat"`
		Lon         flexFloat `json:"lon"`
		DisplayName string    `json:"display_name"`
	}
	if err := getJSON(ctx, g.client, g.name, g.baseURL+"?"+values.Encode(), header, &payload); err != nil {
		return environment.ResolvedLocation{}, err
	}
	if len(payload) == 0 {
		return environment.ResolvedLocation{}, fmt.Errorf("%w: %q", common.ErrNotFound, query)
	}

	first := payload[0]
	return environment.ResolvedLocation{
		Latitude:    float64(first.Lat),
		Longitude:   float64(first.Lon),
		DisplayName: first.DisplayName,
		State:       environment.InferState(g.tables, first.DisplayName),
	}, nil
}

// Package lookup models the ways a location can be identified for an
// OpenWeatherMap query and turns each one into upstream query parameters.
package lookup

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kjstillabower/owm-query/internal/validation"
)

// Mode names a lookup variant. Used as a metric and log label.
type Mode string

const (
	ModeCityName    Mode = "city_name"
	ModeCityID      Mode = "city_id"
	ModeCityIDs     Mode = "city_ids"
	ModeCoordinates Mode = "coordinates"
	ModeZipCode     Mode = "zip_code"
	ModeBoundingBox Mode = "bounding_box"
)

// Request is one lookup. Exactly one variant is used per call; the set of
// variants is closed to this package.
type Request interface {
	Mode() Mode
	// Validate checks required inputs without building anything.
	Validate() error
	// Params validates and returns the lookup's query parameters (no API key).
	Params() (url.Values, error)
	sealed()
}

// ByCityName looks up by city name with an optional country code.
type ByCityName struct {
	CityName    string
	CountryCode string
}

func (ByCityName) Mode() Mode { return ModeCityName }
func (ByCityName) sealed()    {}

func (r ByCityName) Validate() error {
	_, err := validation.RequireString("cityName", "city name", r.CityName)
	return err
}

func (r ByCityName) Params() (url.Values, error) {
	city, err := validation.RequireString("cityName", "city name", r.CityName)
	if err != nil {
		return nil, err
	}
	q := city
	if cc := strings.TrimSpace(r.CountryCode); cc != "" {
		q += "," + cc
	}
	return url.Values{"q": {q}}, nil
}

// ByCityID looks up a single city by its OpenWeatherMap id. "0" is accepted.
type ByCityID struct {
	CityID string
}

func (ByCityID) Mode() Mode { return ModeCityID }
func (ByCityID) sealed()    {}

func (r ByCityID) Validate() error {
	_, err := validation.RequireString("cityId", "city id", r.CityID)
	return err
}

func (r ByCityID) Params() (url.Values, error) {
	id, err := validation.RequireString("cityId", "city id", r.CityID)
	if err != nil {
		return nil, err
	}
	return url.Values{"id": {id}}, nil
}

// ByCityIDs looks up several cities at once; only valid on the group endpoint.
type ByCityIDs struct {
	CityIDs []string
}

func (ByCityIDs) Mode() Mode { return ModeCityIDs }
func (ByCityIDs) sealed()    {}

func (r ByCityIDs) Validate() error {
	_, err := validation.RequireList("cityIds", "city ids", r.CityIDs)
	return err
}

func (r ByCityIDs) Params() (url.Values, error) {
	ids, err := validation.RequireList("cityIds", "city ids", r.CityIDs)
	if err != nil {
		return nil, err
	}
	return url.Values{"id": {strings.Join(ids, ",")}}, nil
}

// ByCoordinates looks up by latitude and longitude. Nil means not provided;
// 0 is a real coordinate.
type ByCoordinates struct {
	Lat *float64
	Lon *float64
}

// Coordinates returns a ByCoordinates with both values present.
func Coordinates(lat, lon float64) ByCoordinates {
	return ByCoordinates{Lat: &lat, Lon: &lon}
}

func (ByCoordinates) Mode() Mode { return ModeCoordinates }
func (ByCoordinates) sealed()    {}

func (r ByCoordinates) Validate() error {
	if err := validation.RequirePresent("lat", "latitude", r.Lat != nil); err != nil {
		return err
	}
	return validation.RequirePresent("lon", "longitude", r.Lon != nil)
}

func (r ByCoordinates) Params() (url.Values, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return url.Values{
		"lat": {formatFloat(*r.Lat)},
		"lon": {formatFloat(*r.Lon)},
	}, nil
}

// ByZipCode looks up by postal code; the country code is mandatory.
type ByZipCode struct {
	ZipCode     string
	CountryCode string
}

func (ByZipCode) Mode() Mode { return ModeZipCode }
func (ByZipCode) sealed()    {}

func (r ByZipCode) Validate() error {
	_, err := r.zip()
	return err
}

func (r ByZipCode) Params() (url.Values, error) {
	zip, err := r.zip()
	if err != nil {
		return nil, err
	}
	return url.Values{"zip": {zip}}, nil
}

func (r ByZipCode) zip() (string, error) {
	zip, err := validation.RequireString("zipCode", "zip code", r.ZipCode)
	if err != nil {
		return "", err
	}
	cc, err := validation.RequireString("countryCode", "country code", r.CountryCode)
	if err != nil {
		return "", err
	}
	return zip + "," + cc, nil
}

// ByBoundingBox lists cities inside a rectangle; only valid on the box endpoint.
// BBox is "minLon,minLat,maxLon,maxLat,zoom".
type ByBoundingBox struct {
	BBox string
}

// BoundingBox formats the five bbox components in upstream order.
func BoundingBox(minLon, minLat, maxLon, maxLat float64, zoom int) ByBoundingBox {
	return ByBoundingBox{BBox: fmt.Sprintf("%s,%s,%s,%s,%d",
		formatFloat(minLon), formatFloat(minLat), formatFloat(maxLon), formatFloat(maxLat), zoom)}
}

func (ByBoundingBox) Mode() Mode { return ModeBoundingBox }
func (ByBoundingBox) sealed()    {}

func (r ByBoundingBox) Validate() error {
	_, err := validation.RequireString("bbox", "bounding box", r.BBox)
	return err
}

func (r ByBoundingBox) Params() (url.Values, error) {
	bbox, err := validation.RequireString("bbox", "bounding box", r.BBox)
	if err != nil {
		return nil, err
	}
	return url.Values{"bbox": {bbox}}, nil
}

// formatFloat uses the shortest representation that round-trips, so 37.386
// is sent as "37.386" rather than "37.386000".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

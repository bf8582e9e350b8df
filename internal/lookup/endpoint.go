package lookup

import (
	"fmt"
	"strings"

	"github.com/kjstillabower/owm-query/internal/validation"
)

// Endpoint is an upstream path family.
type Endpoint int

const (
	CurrentWeather Endpoint = iota
	Forecast5Day
	CityGroup
	BoundingBoxCities
)

func (e Endpoint) String() string {
	switch e {
	case CurrentWeather:
		return "current"
	case Forecast5Day:
		return "forecast"
	case CityGroup:
		return "group"
	case BoundingBoxCities:
		return "box"
	default:
		return "unknown"
	}
}

// Path is the path appended to the API base URL.
func (e Endpoint) Path() string {
	switch e {
	case CurrentWeather:
		return "/weather"
	case Forecast5Day:
		return "/forecast"
	case CityGroup:
		return "/group"
	case BoundingBoxCities:
		return "/box/city"
	default:
		return ""
	}
}

// Supports reports whether the endpoint accepts the lookup mode.
// Group and bounding-box lookups exist only in the current-weather family.
func (e Endpoint) Supports(m Mode) bool {
	switch e {
	case CurrentWeather, Forecast5Day:
		switch m {
		case ModeCityName, ModeCityID, ModeCoordinates, ModeZipCode:
			return true
		}
	case CityGroup:
		return m == ModeCityIDs
	case BoundingBoxCities:
		return m == ModeBoundingBox
	}
	return false
}

// Check validates the request and its pairing with the endpoint.
func (e Endpoint) Check(req Request) error {
	if req == nil {
		return validation.Missing("lookup", "a lookup")
	}
	if !e.Supports(req.Mode()) {
		return validation.Unsupported(string(req.Mode()), e.String())
	}
	return req.Validate()
}

// ParseEndpoint maps a name as printed by String back to an Endpoint.
func ParseEndpoint(s string) (Endpoint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current", "weather":
		return CurrentWeather, nil
	case "forecast":
		return Forecast5Day, nil
	case "group":
		return CityGroup, nil
	case "box":
		return BoundingBoxCities, nil
	}
	return 0, fmt.Errorf("unknown endpoint %q (want current, forecast, group or box)", s)
}

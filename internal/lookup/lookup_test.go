package lookup

import (
	"errors"
	"testing"

	"github.com/kjstillabower/owm-query/internal/validation"
)

func ptr(v float64) *float64 { return &v }

// TestParams verifies the query parameters produced by each lookup variant,
// including country-code composition and verbatim coordinates.
func TestParams(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		key  string
		want string
	}{
		{"city name", ByCityName{CityName: "London"}, "q", "London"},
		{"city name with country", ByCityName{CityName: "London", CountryCode: "UK"}, "q", "London,UK"},
		{"city name trims parts", ByCityName{CityName: " London ", CountryCode: " UK "}, "q", "London,UK"},
		{"city id", ByCityID{CityID: "2172797"}, "id", "2172797"},
		{"city id zero", ByCityID{CityID: "0"}, "id", "0"},
		{"city ids", ByCityIDs{CityIDs: []string{"524901", "703448", "2643743"}}, "id", "524901,703448,2643743"},
		{"zip", ByZipCode{ZipCode: "94040", CountryCode: "us"}, "zip", "94040,us"},
		{"bbox", ByBoundingBox{BBox: "12,32,15,37,10"}, "bbox", "12,32,15,37,10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := tt.req.Params()
			if err != nil {
				t.Fatalf("Params() error = %v", err)
			}
			if got := params.Get(tt.key); got != tt.want {
				t.Errorf("Params()[%q] = %q, want %q", tt.key, got, tt.want)
			}
			if len(params) != 1 {
				t.Errorf("Params() has %d keys, want 1: %v", len(params), params)
			}
		})
	}
}

func TestCoordinates_Verbatim(t *testing.T) {
	params, err := Coordinates(37.386, -122.084).Params()
	if err != nil {
		t.Fatalf("Params() error = %v", err)
	}
	if got := params.Get("lat"); got != "37.386" {
		t.Errorf("lat = %q, want 37.386", got)
	}
	if got := params.Get("lon"); got != "-122.084" {
		t.Errorf("lon = %q, want -122.084", got)
	}
}

// TestCoordinates_ZeroIsPresent guards against truthiness checks rejecting
// the equator or the prime meridian.
func TestCoordinates_ZeroIsPresent(t *testing.T) {
	params, err := Coordinates(0, 0).Params()
	if err != nil {
		t.Fatalf("Params() error = %v, want nil for 0,0", err)
	}
	if params.Get("lat") != "0" || params.Get("lon") != "0" {
		t.Errorf("Params() = %v, want lat=0 lon=0", params)
	}
}

// TestValidate_MissingFields verifies every variant rejects absent required
// inputs with a ValidationError naming the field.
func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"city name empty", ByCityName{}, "cityName"},
		{"city name blank with country", ByCityName{CityName: " ", CountryCode: "UK"}, "cityName"},
		{"city id empty", ByCityID{}, "cityId"},
		{"city ids nil", ByCityIDs{}, "cityIds"},
		{"city ids empty element", ByCityIDs{CityIDs: []string{"1", " "}}, "cityIds[1]"},
		{"lat missing", ByCoordinates{Lon: ptr(1)}, "lat"},
		{"lon missing", ByCoordinates{Lat: ptr(1)}, "lon"},
		{"zip missing", ByZipCode{CountryCode: "us"}, "zipCode"},
		{"zip country missing", ByZipCode{ZipCode: "94040"}, "countryCode"},
		{"bbox empty", ByBoundingBox{}, "bbox"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, err := range []error{tt.req.Validate(), paramsErr(tt.req)} {
				var ve *validation.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("error = %v, want *validation.ValidationError", err)
				}
				if ve.Field != tt.field {
					t.Errorf("Field = %q, want %q", ve.Field, tt.field)
				}
				if !errors.Is(err, validation.ErrMissingField) {
					t.Errorf("errors.Is(err, ErrMissingField) = false for %v", err)
				}
			}
		})
	}
}

func paramsErr(r Request) error {
	_, err := r.Params()
	return err
}

func TestBoundingBox(t *testing.T) {
	got := BoundingBox(12, 32, 15.5, 37, 10).BBox
	if got != "12,32,15.5,37,10" {
		t.Errorf("BoundingBox() = %q, want 12,32,15.5,37,10", got)
	}
}

package main

import (
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/kjstillabower/owm-query/internal/lookup"
)

var errNoLookup = errors.New("one lookup is required: -city, -id, -ids, -lat/-lon, -zip or -bbox")

var errManyLookups = errors.New("only one lookup may be given per call")

type options struct {
	endpoint    string
	city        string
	country     string
	id          string
	ids         string
	lat         float64
	lon         float64
	latSet      bool
	lonSet      bool
	zip         string
	bbox        string
	validateKey bool
	metrics     bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("owmquery", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.endpoint, "endpoint", "", "current, forecast, group or box (default: inferred from the lookup)")
	fs.StringVar(&opts.city, "city", "", "city name")
	fs.StringVar(&opts.country, "country", "", "country code for -city or -zip")
	fs.StringVar(&opts.id, "id", "", "city id")
	fs.StringVar(&opts.ids, "ids", "", "comma-separated city ids (group endpoint)")
	fs.Float64Var(&opts.lat, "lat", 0, "latitude")
	fs.Float64Var(&opts.lon, "lon", 0, "longitude")
	fs.StringVar(&opts.zip, "zip", "", "zip code, requires -country")
	fs.StringVar(&opts.bbox, "bbox", "", "minLon,minLat,maxLon,maxLat,zoom (box endpoint)")
	fs.BoolVar(&opts.validateKey, "validate-key", false, "probe the API key and exit")
	fs.BoolVar(&opts.metrics, "metrics", false, "dump metrics to stderr before exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	// lat/lon = 0 is a real coordinate, so presence is tracked separately.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			opts.latSet = true
		case "lon":
			opts.lonSet = true
		}
	})
	return opts, nil
}

// buildLookup turns flags into one lookup and its endpoint. Missing values
// inside a chosen lookup are left for the client to reject.
func buildLookup(opts options) (lookup.Endpoint, lookup.Request, error) {
	var reqs []lookup.Request
	if opts.city != "" {
		reqs = append(reqs, lookup.ByCityName{CityName: opts.city, CountryCode: opts.country})
	}
	if opts.id != "" {
		reqs = append(reqs, lookup.ByCityID{CityID: opts.id})
	}
	if opts.ids != "" {
		reqs = append(reqs, lookup.ByCityIDs{CityIDs: strings.Split(opts.ids, ",")})
	}
	if opts.latSet || opts.lonSet {
		var c lookup.ByCoordinates
		if opts.latSet {
			lat := opts.lat
			c.Lat = &lat
		}
		if opts.lonSet {
			lon := opts.lon
			c.Lon = &lon
		}
		reqs = append(reqs, c)
	}
	if opts.zip != "" {
		reqs = append(reqs, lookup.ByZipCode{ZipCode: opts.zip, CountryCode: opts.country})
	}
	if opts.bbox != "" {
		reqs = append(reqs, lookup.ByBoundingBox{BBox: opts.bbox})
	}

	switch len(reqs) {
	case 0:
		return 0, nil, errNoLookup
	case 1:
	default:
		return 0, nil, errManyLookups
	}
	req := reqs[0]

	if opts.endpoint != "" {
		endpoint, err := lookup.ParseEndpoint(opts.endpoint)
		if err != nil {
			return 0, nil, err
		}
		return endpoint, req, nil
	}
	switch req.Mode() {
	case lookup.ModeCityIDs:
		return lookup.CityGroup, req, nil
	case lookup.ModeBoundingBox:
		return lookup.BoundingBoxCities, req, nil
	default:
		return lookup.CurrentWeather, req, nil
	}
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/owm-query/internal/lookup"
	"github.com/kjstillabower/owm-query/internal/models"
	"github.com/kjstillabower/owm-query/internal/observability"
	"github.com/kjstillabower/owm-query/internal/validation"
)

// DefaultAPIURL is the OpenWeatherMap 2.5 base; endpoint paths are appended to it.
const DefaultAPIURL = "https://api.openweathermap.org/data/2.5"

// HTTPDoer is the transport the client sends its single GET through.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherClient is the query surface offered to callers.
type WeatherClient interface {
	Fetch(ctx context.Context, endpoint lookup.Endpoint, req lookup.Request) (models.Response, error)
	CurrentWeather(ctx context.Context, req lookup.Request) (models.Response, error)
	Forecast(ctx context.Context, req lookup.Request) (models.Response, error)
	CityGroup(ctx context.Context, req lookup.ByCityIDs) (models.Response, error)
	BoundingBoxCities(ctx context.Context, req lookup.ByBoundingBox) (models.Response, error)
	ValidateAPIKey(ctx context.Context) error
}

// OpenWeatherClient builds and sends lookups. It holds no per-call state and
// is safe for concurrent use once configured.
type OpenWeatherClient struct {
	apiKey string
	apiURL string
	units  string
	lang   string
	doer   HTTPDoer
	logger *zap.Logger
}

func NewOpenWeatherClient(apiKey, apiURL string, timeout time.Duration) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidAPIKey)
	}
	if len(apiKey) < 10 {
		return nil, fmt.Errorf("%w: API key appears invalid (too short)", ErrInvalidAPIKey)
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	return &OpenWeatherClient{
		apiKey: apiKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		doer: &http.Client{
			Timeout: timeout,
		},
		logger: zap.NewNop(),
	}, nil
}

// SetHTTPDoer replaces the default *http.Client.
func (c *OpenWeatherClient) SetHTTPDoer(d HTTPDoer) {
	if d != nil {
		c.doer = d
	}
}

func (c *OpenWeatherClient) SetLogger(l *zap.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetDefaultParams adds units and lang to every query. Empty values are omitted.
func (c *OpenWeatherClient) SetDefaultParams(units, lang string) {
	c.units = strings.TrimSpace(units)
	c.lang = strings.TrimSpace(lang)
}

func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, req lookup.Request) (models.Response, error) {
	return c.Fetch(ctx, lookup.CurrentWeather, req)
}

func (c *OpenWeatherClient) Forecast(ctx context.Context, req lookup.Request) (models.Response, error) {
	return c.Fetch(ctx, lookup.Forecast5Day, req)
}

func (c *OpenWeatherClient) CityGroup(ctx context.Context, req lookup.ByCityIDs) (models.Response, error) {
	return c.Fetch(ctx, lookup.CityGroup, req)
}

func (c *OpenWeatherClient) BoundingBoxCities(ctx context.Context, req lookup.ByBoundingBox) (models.Response, error) {
	return c.Fetch(ctx, lookup.BoundingBoxCities, req)
}

// Fetch validates req for endpoint, sends exactly one GET and decodes the body.
// Validation failures return *validation.ValidationError without touching the
// network; everything after that returns *UpstreamCallError.
func (c *OpenWeatherClient) Fetch(ctx context.Context, endpoint lookup.Endpoint, req lookup.Request) (models.Response, error) {
	mode := modeLabel(req)
	observability.WeatherLookupsTotal.WithLabelValues(endpoint.String(), mode).Inc()

	params, err := c.BuildQuery(endpoint, req)
	if err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			observability.LookupValidationFailuresTotal.WithLabelValues(mode, ve.Field).Inc()
		}
		c.logger.Debug("lookup rejected", zap.String("endpoint", endpoint.String()), zap.String("mode", mode), zap.Error(err))
		return nil, err
	}

	start := time.Now()
	resp, statusCode, err := c.callAPI(ctx, endpoint, params)
	duration := time.Since(start)
	if err != nil {
		callErr := &UpstreamCallError{Endpoint: endpoint.String(), StatusCode: statusCode, Err: err}
		observability.WeatherAPIErrorsTotal.WithLabelValues(string(CategorizeError(callErr))).Inc()
		c.logger.Warn("weather api call failed",
			zap.String("endpoint", endpoint.String()),
			zap.String("mode", mode),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, callErr
	}

	c.logger.Debug("weather api call",
		zap.String("endpoint", endpoint.String()),
		zap.String("mode", mode),
		zap.Int("status", statusCode),
		zap.Duration("duration", duration),
	)
	return resp, nil
}

// BuildQuery returns the exact query parameters Fetch would send, API key included.
func (c *OpenWeatherClient) BuildQuery(endpoint lookup.Endpoint, req lookup.Request) (url.Values, error) {
	if err := endpoint.Check(req); err != nil {
		return nil, err
	}
	params, err := req.Params()
	if err != nil {
		return nil, err
	}
	params.Set("appid", c.apiKey)
	if c.units != "" {
		params.Set("units", c.units)
	}
	if c.lang != "" {
		params.Set("lang", c.lang)
	}
	return params, nil
}

// callAPI performs the GET and returns the decoded body with the status code
// (0 when no response arrived).
func (c *OpenWeatherClient) callAPI(ctx context.Context, endpoint lookup.Endpoint, params url.Values) (models.Response, int, error) {
	start := time.Now()
	label := endpoint.String()

	req, err := c.buildRequest(ctx, endpoint, params)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(label, "error").Inc()
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(label, "error").Inc()
		observability.WeatherAPIDuration.WithLabelValues(label, "error").Observe(time.Since(start).Seconds())

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, 0, fmt.Errorf("request timeout: %w", err)
		}
		return nil, 0, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(label, status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(label, status).Observe(time.Since(start).Seconds())

	if err := statusError(resp.StatusCode); err != nil {
		return nil, resp.StatusCode, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	var out models.Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parse response: %w", err)
	}
	return out, resp.StatusCode, nil
}

func (c *OpenWeatherClient) buildRequest(ctx context.Context, endpoint lookup.Endpoint, params url.Values) (*http.Request, error) {
	u, err := url.Parse(c.apiURL + endpoint.Path())
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if corrID := CorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}
	return req, nil
}

// ValidateAPIKey probes the current-weather endpoint once and reports a 401 as ErrInvalidAPIKey.
func (c *OpenWeatherClient) ValidateAPIKey(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	params, err := c.BuildQuery(lookup.CurrentWeather, lookup.ByCityName{CityName: "London"})
	if err != nil {
		return fmt.Errorf("build validation request: %w", err)
	}
	req, err := c.buildRequest(ctx, lookup.CurrentWeather, params)
	if err != nil {
		return fmt.Errorf("build validation request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: API key is invalid or not activated", ErrInvalidAPIKey)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("validation failed: HTTP %d", resp.StatusCode)
	}

	return nil
}

func modeLabel(req lookup.Request) string {
	if req == nil {
		return "none"
	}
	return string(req.Mode())
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}

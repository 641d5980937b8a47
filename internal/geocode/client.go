package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public BigDataCloud client API endpoint. The
// reverse-geocode-client route needs no API key.
const DefaultBaseURL = "https://api.bigdatacloud.net"

const defaultTimeout = 10 * time.Second

// ErrLookupFailed is returned when the reverse-geocode call fails or
// yields no usable place name.
var ErrLookupFailed = errors.New("geocode: reverse lookup failed")

// Client resolves coordinates to city names.
type Client struct {
	baseURL    string
	locale     string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (tests point this at a local server).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLocale sets the localityLanguage query parameter.
func WithLocale(locale string) Option {
	return func(c *Client) { c.locale = locale }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a reverse-geocoding client. The default locale is
// Indonesian to match the reminder copy.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		locale:  "id",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// reverseResponse holds the fields we read from the API.
type reverseResponse struct {
	City     string `json:"city"`
	Locality string `json:"locality"`
}

// CityName resolves coordinates to a place label, preferring the city
// field and falling back to the broader locality.
//
// Returns:
//   - string: Non-empty place name
//   - error: ErrLookupFailed (wrapped) on transport failure, bad payloads
//     or a response carrying neither city nor locality
func (c *Client) CityName(ctx context.Context, latitude, longitude float64) (string, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("localityLanguage", c.locale)

	endpoint := c.baseURL + "/data/reverse-geocode-client?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain body to allow connection reuse
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: HTTP %d", ErrLookupFailed, resp.StatusCode)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding response: %w", ErrLookupFailed, err)
	}

	name := payload.City
	if name == "" {
		name = payload.Locality
	}
	if name == "" {
		return "", fmt.Errorf("%w: no city or locality in response", ErrLookupFailed)
	}
	return name, nil
}

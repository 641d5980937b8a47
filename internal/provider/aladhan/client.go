package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// DefaultBaseURL is the public AlAdhan API endpoint.
const DefaultBaseURL = "https://api.aladhan.com"

// DefaultMethod is the calculation method passed to the API.
// Method 11 is Majlis Ugama Islam Singapura / Kemenag-compatible timings
// for the Indonesian archipelago.
const DefaultMethod = 11

const defaultTimeout = 10 * time.Second

// apiDateFormat is the DD-MM-YYYY layout used in both request paths and
// the gregorian date field of responses.
const apiDateFormat = "02-01-2006"

// Client fetches prayer timetables from the AlAdhan API.
type Client struct {
	baseURL    string
	method     int
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (tests point this at a local server).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithMethod overrides the calculation method.
func WithMethod(m int) Option {
	return func(c *Client) { c.method = m }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates an AlAdhan API client with sane defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		method:  DefaultMethod,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timings fetches the daily schedule for one date at one location.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - date: Calendar date to fetch (time zone ignored; day/month/year used)
//   - loc: Coordinates for the calculation
//
// Returns:
//   - *prayer.DailySchedule: Validated schedule with all six events
//   - error: ErrScheduleUnavailable on transport/status failures,
//     ErrBadPayload (or prayer.ErrMalformedSchedule) on bad bodies
func (c *Client) Timings(ctx context.Context, date time.Time, loc prayer.Location) (*prayer.DailySchedule, error) {
	endpoint := fmt.Sprintf("%s/v1/timings/%s", c.baseURL, date.Format(apiDateFormat))

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
	q.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
	q.Set("method", fmt.Sprintf("%d", c.method))

	var payload timingsResponse
	if err := c.getJSON(ctx, endpoint+"?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: api code %d (%s)", ErrScheduleUnavailable, payload.Code, payload.Status)
	}

	sched, err := prayer.NewDailySchedule(date, payload.Data.Timings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	return sched, nil
}

// Calendar fetches the monthly imsakiyah timetable.
//
// Every day in the response must carry parseable Imsak, Fajr and Maghrib
// times and a well-formed gregorian date; one bad day rejects the month.
//
// Returns:
//   - *prayer.MonthlyCalendar: Validated, date-ascending calendar
//   - error: ErrScheduleUnavailable or ErrBadPayload as for Timings
func (c *Client) Calendar(ctx context.Context, year int, month time.Month, loc prayer.Location) (*prayer.MonthlyCalendar, error) {
	endpoint := fmt.Sprintf("%s/v1/calendar/%d/%d", c.baseURL, year, int(month))

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
	q.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
	q.Set("method", fmt.Sprintf("%d", c.method))

	var payload calendarResponse
	if err := c.getJSON(ctx, endpoint+"?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: api code %d (%s)", ErrScheduleUnavailable, payload.Code, payload.Status)
	}

	cal := &prayer.MonthlyCalendar{
		Year:  year,
		Month: month,
		Days:  make([]prayer.ImsakiyahDay, 0, len(payload.Data)),
	}

	for _, d := range payload.Data {
		day, err := parseImsakiyahDay(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
		}
		cal.Days = append(cal.Days, day)
	}

	if err := prayer.ValidateCalendar(cal); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	return cal, nil
}

// parseImsakiyahDay converts one calendar entry to the domain type.
func parseImsakiyahDay(d timingsData) (prayer.ImsakiyahDay, error) {
	date, err := time.ParseInLocation(apiDateFormat, d.Date.Gregorian.Date, time.Local)
	if err != nil {
		return prayer.ImsakiyahDay{}, fmt.Errorf("parsing gregorian date %q: %w", d.Date.Gregorian.Date, err)
	}

	imsak, err := prayer.ParseClockTime(d.Timings["Imsak"])
	if err != nil {
		return prayer.ImsakiyahDay{}, fmt.Errorf("imsak for %s: %w", d.Date.Gregorian.Date, err)
	}
	fajr, err := prayer.ParseClockTime(d.Timings["Fajr"])
	if err != nil {
		return prayer.ImsakiyahDay{}, fmt.Errorf("fajr for %s: %w", d.Date.Gregorian.Date, err)
	}
	maghrib, err := prayer.ParseClockTime(d.Timings["Maghrib"])
	if err != nil {
		return prayer.ImsakiyahDay{}, fmt.Errorf("maghrib for %s: %w", d.Date.Gregorian.Date, err)
	}

	return prayer.ImsakiyahDay{
		Date:        date,
		DisplayDate: d.Date.Readable,
		Imsak:       imsak,
		Fajr:        fajr,
		Maghrib:     maghrib,
	}, nil
}

// getJSON performs one GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScheduleUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScheduleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain body to allow connection reuse
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: HTTP %d", ErrScheduleUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrBadPayload, err)
	}
	return nil
}

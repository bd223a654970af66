// File: services/calendar/google.go
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"slotsmith/models"
	"slotsmith/utils"
)

const (
	tokenURL    = "https://oauth2.googleapis.com/token"
	freeBusyURL = "https://www.googleapis.com/calendar/v3/freeBusy"
	eventsURL   = "https://www.googleapis.com/calendar/v3/calendars/%s/events"
)

// GoogleCalendar is a Provider backed by the Google Calendar REST API.
type GoogleCalendar struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Location     *time.Location
	HTTP         *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewGoogleCalendar constructs a Google-backed Provider. timeout bounds each
// outbound call.
func NewGoogleCalendar(clientID, clientSecret, refreshToken string, loc *time.Location, timeout time.Duration) *GoogleCalendar {
	return &GoogleCalendar{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
		Location:     loc,
		HTTP:         &http.Client{Timeout: timeout},
	}
}

// Authorized reports whether a refresh token is configured at all. An
// unconfigured provider answers every query with no data instead of
// failing the pipeline.
func (g *GoogleCalendar) Authorized() bool {
	return g.RefreshToken != "" && g.ClientID != ""
}

// token returns a valid access token, exchanging the refresh token when the
// cached one has expired.
func (g *GoogleCalendar) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.accessToken != "" && time.Now().Before(g.tokenExpiry) {
		return g.accessToken, nil
	}

	form := url.Values{
		"client_id":     {g.ClientID},
		"client_secret": {g.ClientSecret},
		"refresh_token": {g.RefreshToken},
		"grant_type":    {"refresh_token"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding token response failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK || body.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned status %d", resp.StatusCode)
	}

	g.accessToken = body.AccessToken
	// Refresh one minute early.
	g.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn-60) * time.Second)
	return g.accessToken, nil
}

// toUTC interprets a naive local datetime in the provider's zone and formats
// it as an RFC3339 UTC timestamp.
func (g *GoogleCalendar) toUTC(t time.Time) string {
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, g.Location)
	return local.UTC().Format(time.RFC3339)
}

// toNaiveLocal converts an instant into a naive datetime in the provider's zone.
func (g *GoogleCalendar) toNaiveLocal(t time.Time) time.Time {
	l := t.In(g.Location)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), 0, time.UTC)
}

func (g *GoogleCalendar) BusyIntervals(ctx context.Context, calendarIDs []string, start, end time.Time) ([]models.BusyInterval, error) {
	if !g.Authorized() {
		return nil, nil
	}
	token, err := g.token(ctx)
	if err != nil {
		return nil, err
	}

	type item struct {
		ID string `json:"id"`
	}
	items := make([]item, 0, len(calendarIDs))
	for _, id := range calendarIDs {
		items = append(items, item{ID: id})
	}
	payload, err := json.Marshal(map[string]any{
		"timeMin": g.toUTC(start),
		"timeMax": g.toUTC(end),
		"items":   items,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, freeBusyURL, strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freebusy request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freebusy returned status %d", resp.StatusCode)
	}

	var body struct {
		Calendars map[string]struct {
			Busy []struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"busy"`
		} `json:"calendars"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding freebusy response failed: %w", err)
	}

	var intervals []models.BusyInterval
	for _, cal := range body.Calendars {
		for _, b := range cal.Busy {
			intervals = append(intervals, models.BusyInterval{
				Start: g.toNaiveLocal(b.Start),
				End:   g.toNaiveLocal(b.End),
			})
		}
	}
	return intervals, nil
}

func (g *GoogleCalendar) EventsForDay(ctx context.Context, calendarID string, start, end time.Time) ([]models.CalendarEvent, error) {
	if !g.Authorized() {
		return nil, nil
	}
	token, err := g.token(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{
		"timeMin":      {g.toUTC(start)},
		"timeMax":      {g.toUTC(end)},
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
	}
	endpoint := fmt.Sprintf(eventsURL, url.PathEscape(calendarID)) + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("events request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("events list returned status %d", resp.StatusCode)
	}

	var body struct {
		Items []struct {
			Summary  string `json:"summary"`
			Location string `json:"location"`
			Start    struct {
				DateTime time.Time `json:"dateTime"`
			} `json:"start"`
			End struct {
				DateTime time.Time `json:"dateTime"`
			} `json:"end"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding events response failed: %w", err)
	}

	events := make([]models.CalendarEvent, 0, len(body.Items))
	for _, it := range body.Items {
		// All-day events carry no dateTime; they do not participate in
		// window matching or drive-time lookups.
		if it.Start.DateTime.IsZero() || it.End.DateTime.IsZero() {
			utils.GetLogger().Debug("skipping all-day event", zap.String("summary", it.Summary))
			continue
		}
		events = append(events, models.CalendarEvent{
			Start:    g.toNaiveLocal(it.Start.DateTime),
			End:      g.toNaiveLocal(it.End.DateTime),
			Title:    it.Summary,
			Location: it.Location,
		})
	}
	return events, nil
}

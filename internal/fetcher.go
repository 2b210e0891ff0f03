package internal

import (
	"context"
	"ecocal/entity"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const windowLayout = "2006-01-02T15:04:05"

// Window returns the [from, to] range starting at today's midnight UTC.
func Window(now time.Time, days int) (time.Time, time.Time) {
	now = now.UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, days)
}

func formatWindowDate(t time.Time) string {
	return t.UTC().Format(windowLayout) + "Z"
}

// BuildEventsRequest creates the GET request for the configured countries and window.
func (s service) BuildEventsRequest(ctx context.Context) (*http.Request, error) {
	u, err := url.Parse(s.config.EconomicCalendarUrl)
	if err != nil {
		return nil, fmt.Errorf("parse economic calendar url: %w", err)
	}

	from, to := Window(s.now(), s.config.WindowDays)

	q := u.Query()
	q.Set("from", formatWindowDate(from))
	q.Set("to", formatWindowDate(to))
	q.Set("countries", strings.Join(s.config.Countries, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build economic calendar request: %w", err)
	}
	req.Header.Set("Origin", s.config.Origin)
	req.Header.Set("Referer", s.config.Referer)
	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// FetchEvents returns the raw events for the window. Every failure is logged
// and reported as an empty result.
func (s service) FetchEvents(ctx context.Context) []entity.EconomicEvent {
	log.Printf("Fetching economic events for %s", strings.Join(s.config.Countries, ", "))

	events, err := s.fetchEvents(ctx)
	if err != nil {
		log.Printf("error fetching data: %s", err.Error())
		return []entity.EconomicEvent{}
	}
	if len(events) == 0 {
		log.Println("No events found in the API response.")
		return []entity.EconomicEvent{}
	}
	return events
}

func (s service) fetchEvents(ctx context.Context) ([]entity.EconomicEvent, error) {
	req, err := s.BuildEventsRequest(ctx)
	if err != nil {
		return nil, err
	}
	log.Println("Calling " + req.URL.String())

	response, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call economic calendar: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Printf("error closing economic calendar response: %s", err.Error())
		}
	}(response.Body)
	log.Println(response.Status)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("economic calendar returned %s", response.Status)
	}

	var body entity.EventsResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parse economic calendar response: %w", err)
	}
	return body.Result, nil
}

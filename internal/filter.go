package internal

import (
	"ecocal/entity"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseEventDate parses the API date. Values without a zone are UTC.
func ParseEventDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterHighImpact keeps the events with importance exactly 1, in input order,
// and fills in their parsed Time. Unparseable dates are kept with a zero Time.
func FilterHighImpact(events []entity.EconomicEvent) []entity.EconomicEvent {
	filtered := make([]entity.EconomicEvent, 0, len(events))
	for _, e := range events {
		if !e.Importance.IsHigh() {
			continue
		}
		e.Time, _ = ParseEventDate(e.Date)
		filtered = append(filtered, e)
	}
	return filtered
}

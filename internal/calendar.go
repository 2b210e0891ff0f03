package internal

import (
	"ecocal/entity"
	"fmt"
	ics "github.com/arran4/golang-ical"
	"github.com/enescakir/emoji"
	"github.com/google/uuid"
	"io"
	"os"
	"strings"
	"time"
)

const (
	ICSProductID = "-//ecocal//High Impact Economic Events//EN"
	ICSCalName   = "High Impact Economic Events"

	FilePermissions = 0644
)

var countryFlags = map[string]emoji.Emoji{
	"US": emoji.FlagForUnitedStates,
	"IN": emoji.FlagForIndia,
}

// GetEmojiCountry returns the flag for a country code, or a globe for codes
// outside the lookup table.
func GetEmojiCountry(country string) string {
	if flag, ok := countryFlags[country]; ok {
		return flag.String()
	}
	return emoji.GlobeShowingEuropeAfrica.String()
}

// EventUID derives a stable UID so re-imports update events instead of duplicating them.
func EventUID(e entity.EconomicEvent) string {
	key := strings.Join([]string{e.Country, e.Date, e.Title}, "|")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String() + "@ecocal"
}

// BuildEvents maps every filtered record to exactly one calendar event.
func BuildEvents(events []entity.EconomicEvent) []entity.CalendarEvent {
	out := make([]entity.CalendarEvent, 0, len(events))
	for _, e := range events {
		out = append(out, entity.CalendarEvent{
			UID:         EventUID(e),
			Name:        GetEmojiCountry(e.Country) + " " + e.Title,
			Start:       e.Time,
			Duration:    entity.EventDuration,
			Description: e.Comment,
		})
	}
	return out
}

// BuildCalendar assembles the VCALENDAR for the given events.
func BuildCalendar(events []entity.CalendarEvent, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ICSProductID)
	cal.SetXWRCalName(ICSCalName)

	for _, e := range events {
		event := cal.AddEvent(e.UID)
		event.SetDtStampTime(stamp)
		event.SetSummary(e.Name)
		if e.HasStart() {
			event.SetStartAt(e.Start)
			event.SetEndAt(e.End())
		}
		if e.Description != "" {
			event.SetDescription(e.Description)
		}
	}
	return cal
}

// WriteCalendar replaces the file at path with the serialized calendar.
func WriteCalendar(path string, cal *ics.Calendar) error {
	if err := os.WriteFile(path, []byte(cal.Serialize()), FilePermissions); err != nil {
		return fmt.Errorf("write calendar %s: %w", path, err)
	}
	return nil
}

// ParseCalendar reads an .ics stream back into calendar events.
func ParseCalendar(r io.Reader) ([]entity.CalendarEvent, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var events []entity.CalendarEvent
	for _, e := range cal.Events() {
		event := entity.CalendarEvent{UID: e.Id()}
		if p := e.GetProperty(ics.ComponentPropertySummary); p != nil {
			event.Name = p.Value
		}
		if p := e.GetProperty(ics.ComponentPropertyDescription); p != nil {
			event.Description = p.Value
		}
		if start, err := e.GetStartAt(); err == nil {
			event.Start = start
			if end, err := e.GetEndAt(); err == nil {
				event.Duration = end.Sub(start)
			}
		}
		events = append(events, event)
	}
	return events, nil
}

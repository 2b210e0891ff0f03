package entity

import "time"

// EventDuration is the fixed length given to every exported announcement.
const EventDuration = 30 * time.Minute

type CalendarEvent struct {
	UID         string        `json:"uid"`
	Name        string        `json:"name"`
	Start       time.Time     `json:"start"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description,omitempty"`
}

// HasStart reports whether the source date could be parsed.
func (e CalendarEvent) HasStart() bool {
	return !e.Start.IsZero()
}

func (e CalendarEvent) End() time.Time {
	return e.Start.Add(e.Duration)
}

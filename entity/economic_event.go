package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// EventsResponse is the envelope returned by the economic calendar API.
type EventsResponse struct {
	Status string          `json:"status"`
	Result []EconomicEvent `json:"result"`
}

type EconomicEvent struct {
	Id         string     `json:"id"`
	Title      string     `json:"title"`
	Country    string     `json:"country"`
	Indicator  string     `json:"indicator"`
	Period     string     `json:"period"`
	Source     string     `json:"source"`
	Currency   string     `json:"currency"`
	Comment    string     `json:"comment"`
	Importance Importance `json:"importance"`
	Date       string     `json:"date"`

	// Time is Date coerced to a timestamp; zero when Date could not be parsed.
	Time time.Time `json:"-"`
}

// UnmarshalJSON reads the text fields leniently so one odd row does not fail
// the whole response: non-string values keep their raw JSON text, and rows
// that are not objects decode as an empty event with unknown importance.
func (e *EconomicEvent) UnmarshalJSON(data []byte) error {
	type plain EconomicEvent
	var raw struct {
		plain
		Id        json.RawMessage `json:"id"`
		Title     json.RawMessage `json:"title"`
		Country   json.RawMessage `json:"country"`
		Indicator json.RawMessage `json:"indicator"`
		Period    json.RawMessage `json:"period"`
		Source    json.RawMessage `json:"source"`
		Currency  json.RawMessage `json:"currency"`
		Comment   json.RawMessage `json:"comment"`
		Date      json.RawMessage `json:"date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*e = EconomicEvent{}
		return nil
	}

	*e = EconomicEvent(raw.plain)
	e.Id = rawText(raw.Id)
	e.Title = rawText(raw.Title)
	e.Country = rawText(raw.Country)
	e.Indicator = rawText(raw.Indicator)
	e.Period = rawText(raw.Period)
	e.Source = rawText(raw.Source)
	e.Currency = rawText(raw.Currency)
	e.Comment = rawText(raw.Comment)
	e.Date = rawText(raw.Date)
	return nil
}

// rawText returns a JSON string's value, "" for null or absent, and the raw
// JSON text for anything else.
func rawText(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ""
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return s
		}
	}
	return string(data)
}

// Importance levels used by the API.
const (
	ImportanceLow    = -1
	ImportanceMedium = 0
	ImportanceHigh   = 1
)

// Importance is the API importance flag. Values that are absent, null or
// not numeric decode as unknown instead of failing the whole response.
type Importance struct {
	Value float64
	Known bool
}

func NewImportance(v float64) Importance {
	return Importance{Value: v, Known: true}
}

func (i Importance) IsHigh() bool {
	return i.Known && i.Value == ImportanceHigh
}

func (i *Importance) UnmarshalJSON(data []byte) error {
	*i = Importance{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*i = NewImportance(v)
	return nil
}

func (i Importance) MarshalJSON() ([]byte, error) {
	if !i.Known {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

func (i Importance) String() string {
	if !i.Known {
		return "unknown"
	}
	return strconv.FormatFloat(i.Value, 'f', -1, 64)
}

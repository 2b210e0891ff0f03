package entity

import (
	"encoding/json"
	"testing"
)

func TestImportanceUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		known bool
		high  bool
	}{
		{"high number", `{"importance":1}`, true, true},
		{"high float", `{"importance":1.0}`, true, true},
		{"medium", `{"importance":0}`, true, false},
		{"low", `{"importance":-1}`, true, false},
		{"numeric string", `{"importance":"1"}`, true, true},
		{"text", `{"importance":"high"}`, false, false},
		{"null", `{"importance":null}`, false, false},
		{"missing", `{}`, false, false},
		{"bool", `{"importance":true}`, false, false},
		{"out of domain", `{"importance":2}`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e EconomicEvent
			if err := json.Unmarshal([]byte(tt.body), &e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Importance.Known != tt.known {
				t.Errorf("known: expected %v, got %v", tt.known, e.Importance.Known)
			}
			if e.Importance.IsHigh() != tt.high {
				t.Errorf("high: expected %v, got %v", tt.high, e.Importance.IsHigh())
			}
		})
	}
}

func TestImportanceDoesNotBreakResponse(t *testing.T) {
	body := `{"status":"ok","result":[
		{"title":"CPI m/m","country":"US","importance":1,"date":"2025-01-10T13:30:00.000Z"},
		{"title":"Odd","country":"IN","importance":"n/a","date":"2025-01-11T05:30:00.000Z"}
	]}`
	var resp EventsResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp.Result))
	}
	if resp.Result[1].Importance.Known {
		t.Error("non-numeric importance should be unknown")
	}
}

func TestEconomicEventLenientFields(t *testing.T) {
	body := `{"result":[
		{"date":"2025-01-10T13:30:00","title":"CPI m/m","country":"US","importance":1,"comment":"Key inflation gauge"},
		{"date":1736515800000,"title":"NFP","country":"US","importance":1},
		{"date":null,"title":42,"country":"IN","importance":1,"comment":{"text":"x"}},
		7,
		["not","an","event"]
	]}`
	var resp EventsResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Result) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(resp.Result))
	}

	first := resp.Result[0]
	if first.Date != "2025-01-10T13:30:00" || first.Title != "CPI m/m" || first.Comment != "Key inflation gauge" {
		t.Errorf("unexpected first row %+v", first)
	}
	if !first.Importance.IsHigh() {
		t.Error("first row should be high impact")
	}

	nfp := resp.Result[1]
	if nfp.Date != "1736515800000" || nfp.Title != "NFP" || !nfp.Importance.IsHigh() {
		t.Errorf("numeric date should keep its raw text, got %+v", nfp)
	}

	odd := resp.Result[2]
	if odd.Date != "" || odd.Title != "42" || odd.Comment != `{"text":"x"}` || odd.Country != "IN" {
		t.Errorf("unexpected odd row %+v", odd)
	}

	for _, e := range resp.Result[3:] {
		if e.Importance.Known || e.Title != "" {
			t.Errorf("non-object row should decode empty, got %+v", e)
		}
	}
}

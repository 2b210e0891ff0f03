package internal

import (
	"context"
	"ecocal/entity"
	"encoding/json"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSheetRows(t *testing.T) {
	rows := SheetRows(FilterHighImpact([]entity.EconomicEvent{
		{Title: "CPI m/m", Country: "US", Importance: entity.NewImportance(1), Date: "2025-01-10T13:30:00", Comment: "Key inflation gauge"},
		{Title: "Odd", Country: "IN", Importance: entity.NewImportance(1), Date: "later"},
	}))

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "date" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "2025-01-10 13:30" || rows[1][2] != "CPI m/m" || rows[1][3] != "1" {
		t.Errorf("unexpected row %v", rows[1])
	}
	if rows[2][0] != "later" {
		t.Errorf("unparsed date should be kept raw, got %v", rows[2][0])
	}
}

func TestSheetsExporter(t *testing.T) {
	var method, path, query string
	var body sheets.ValueRange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, query = r.Method, r.URL.Path, r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("could not decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId":"sheet-1","updatedRows":2}`))
	}))
	defer server.Close()

	ctx := context.Background()
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(server.Client()), option.WithEndpoint(server.URL+"/"))
	if err != nil {
		t.Fatal(err)
	}

	exporter := NewSheetsExporter(sheetsService, "sheet-1", "Events!A1")
	events := FilterHighImpact([]entity.EconomicEvent{
		{Title: "CPI m/m", Country: "US", Importance: entity.NewImportance(1), Date: "2025-01-10T13:30:00"},
	})
	if err := exporter.Export(ctx, events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if method != http.MethodPut {
		t.Errorf("expected PUT, got %s", method)
	}
	if !strings.Contains(path, "/v4/spreadsheets/sheet-1/values/") {
		t.Errorf("unexpected path %s", path)
	}
	if !strings.Contains(query, "valueInputOption=RAW") {
		t.Errorf("unexpected query %s", query)
	}
	if len(body.Values) != 2 {
		t.Errorf("expected 2 rows, got %d", len(body.Values))
	}
}

func TestSheetsExporterError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	ctx := context.Background()
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(server.Client()), option.WithEndpoint(server.URL+"/"))
	if err != nil {
		t.Fatal(err)
	}

	if err := NewSheetsExporter(sheetsService, "sheet-1", "Events!A1").Export(ctx, nil); err == nil {
		t.Error("expected error")
	}
}

func TestNewSheetsServiceMissingKeyFile(t *testing.T) {
	if _, err := NewSheetsService(context.Background(), "/does/not/exist.json"); err == nil {
		t.Error("expected error for missing key file")
	}
}

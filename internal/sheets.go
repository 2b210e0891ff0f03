package internal

import (
	"context"
	"ecocal/entity"
	"fmt"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"log"
	"os"
)

var sheetHeader = []interface{}{"date", "country", "title", "importance", "comment"}

type sheetsExporter struct {
	sheetsService *sheets.Service
	spreadsheetId string
	writeRange    string
}

func NewSheetsExporter(sheetsService *sheets.Service, spreadsheetId string, writeRange string) Exporter {
	return sheetsExporter{sheetsService: sheetsService, spreadsheetId: spreadsheetId, writeRange: writeRange}
}

// NewSheetsService builds a Sheets client from a service account key file.
func NewSheetsService(ctx context.Context, keyFile string) (*sheets.Service, error) {
	creeds, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(creeds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to create JWT config: %w", err)
	}

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets service: %w", err)
	}
	return sheetsService, nil
}

// SheetRows lays the events out as a header row followed by one row per event.
func SheetRows(events []entity.EconomicEvent) [][]interface{} {
	rows := make([][]interface{}, 0, len(events)+1)
	rows = append(rows, sheetHeader)
	for _, e := range events {
		date := e.Date
		if !e.Time.IsZero() {
			date = e.Time.UTC().Format("2006-01-02 15:04")
		}
		rows = append(rows, []interface{}{date, e.Country, e.Title, e.Importance.String(), e.Comment})
	}
	return rows
}

func (x sheetsExporter) Export(ctx context.Context, events []entity.EconomicEvent) error {
	valueRange := &sheets.ValueRange{Values: SheetRows(events)}
	resp, err := x.sheetsService.Spreadsheets.Values.
		Update(x.spreadsheetId, x.writeRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to write data to sheet: %w", err)
	}
	log.Printf("%d rows written to spreadsheet %s", resp.UpdatedRows, x.spreadsheetId)
	return nil
}

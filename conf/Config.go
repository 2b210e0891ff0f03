package conf

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
)

const (
	DefaultConfigFile          = "config.json"
	DefaultEconomicCalendarUrl = "https://economic-calendar.tradingview.com/events"
	DefaultOutputFile          = "us_in_high_impact_events.ics"
	DefaultWindowDays          = 90
	DefaultScheduleAt          = "06:00"
)

type Config struct {
	Address             string   `json:"address"`
	Port                string   `json:"port"`
	EconomicCalendarUrl string   `json:"economic_calendar_url"`
	Countries           []string `json:"countries"`
	WindowDays          int      `json:"window_days"`
	OutputFile          string   `json:"output_file"`
	Origin              string   `json:"origin"`
	Referer             string   `json:"referer"`
	UserAgent           string   `json:"user_agent"`
	TimeoutSeconds      int      `json:"timeout_seconds"`
	ScheduleAt          string   `json:"schedule_at"`
	SpreadsheetId       string   `json:"spread_sheet_id"`
	WriteRange          string   `json:"write_range"`
	KeyFile             string   `json:"key_file"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Address:             "",
		Port:                "8080",
		EconomicCalendarUrl: DefaultEconomicCalendarUrl,
		Countries:           []string{"US", "IN"},
		WindowDays:          DefaultWindowDays,
		OutputFile:          DefaultOutputFile,
		Origin:              "https://in.tradingview.com",
		Referer:             "https://in.tradingview.com/",
		UserAgent:           "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
		ScheduleAt:          DefaultScheduleAt,
		WriteRange:          "Events!A1",
	}
}

// Load reads the json config at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	config := Default()
	configFile, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config file %s not found, using defaults\n", path)
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer func(configFile *os.File) {
		err := configFile.Close()
		if err != nil {
			log.Printf("could not close json config %s\n", err.Error())
		}
	}(configFile)

	jsonParser := json.NewDecoder(configFile)
	if err = jsonParser.Decode(&config); err != nil {
		return config, err
	}
	config.fillDefaults()
	return config, nil
}

// fillDefaults restores defaults for fields a config file set to their zero value.
func (c *Config) fillDefaults() {
	d := Default()
	if c.EconomicCalendarUrl == "" {
		c.EconomicCalendarUrl = d.EconomicCalendarUrl
	}
	if len(c.Countries) == 0 {
		c.Countries = d.Countries
	}
	if c.WindowDays <= 0 {
		c.WindowDays = d.WindowDays
	}
	if c.OutputFile == "" {
		c.OutputFile = d.OutputFile
	}
	if c.ScheduleAt == "" {
		c.ScheduleAt = d.ScheduleAt
	}
	if c.Port == "" {
		c.Port = d.Port
	}
}

// SheetsEnabled reports whether the Google Sheets export is configured.
func (c Config) SheetsEnabled() bool {
	return c.KeyFile != "" && c.SpreadsheetId != ""
}

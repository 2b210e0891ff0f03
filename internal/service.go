package internal

import (
	"context"
	"ecocal/conf"
	"ecocal/entity"
	"fmt"
	"github.com/go-co-op/gocron"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

type Service interface {
	FetchEvents(ctx context.Context) []entity.EconomicEvent

	HighImpactEvents(ctx context.Context) []entity.EconomicEvent

	Run(ctx context.Context) (RunResult, error)

	ScheduledCalendarUpdate(ctx context.Context) (*gocron.Scheduler, error)

	OutputFile() string
}

// Exporter receives the high-impact events of every non-empty run.
type Exporter interface {
	Export(ctx context.Context, events []entity.EconomicEvent) error
}

type RunResult struct {
	Fetched  int
	Filtered int
	Written  bool
	Path     string
}

type Option func(*service)

func WithHTTPClient(client *http.Client) Option {
	return func(s *service) {
		s.client = client
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func WithExporter(exporter Exporter) Option {
	return func(s *service) {
		s.exporters = append(s.exporters, exporter)
	}
}

type service struct {
	config    conf.Config
	client    *http.Client
	now       func() time.Time
	exporters []Exporter
}

func NewService(config conf.Config, opts ...Option) Service {
	s := &service{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

func (s service) OutputFile() string {
	return s.config.OutputFile
}

func (s service) HighImpactEvents(ctx context.Context) []entity.EconomicEvent {
	events := FilterHighImpact(s.FetchEvents(ctx))
	log.Printf("Found %d total high-impact events for %s", len(events), strings.Join(s.config.Countries, ", "))
	return events
}

// Run executes fetch, filter and calendar generation once. The output file is
// only touched when there is at least one high-impact event; the only error
// returned is a failure to write it.
func (s service) Run(ctx context.Context) (RunResult, error) {
	raw := s.FetchEvents(ctx)
	events := FilterHighImpact(raw)
	log.Printf("Found %d total high-impact events for %s", len(events), strings.Join(s.config.Countries, ", "))

	result := RunResult{Fetched: len(raw), Filtered: len(events), Path: s.config.OutputFile}
	if len(events) == 0 {
		log.Println("No high-impact events, calendar file not written")
		return result, nil
	}

	PrintEvents(os.Stdout, events)

	log.Println("Creating calendar file...")
	cal := BuildCalendar(BuildEvents(events), s.now())
	if err := WriteCalendar(s.config.OutputFile, cal); err != nil {
		return result, err
	}
	result.Written = true
	log.Printf("Successfully created calendar file: %s", s.config.OutputFile)

	for _, exporter := range s.exporters {
		if err := exporter.Export(ctx, events); err != nil {
			log.Printf("error exporting events: %s", err.Error())
		}
	}
	return result, nil
}

// PrintEvents writes the date, title, country and importance of each event as a table.
func PrintEvents(w io.Writer, events []entity.EconomicEvent) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTITLE\tCOUNTRY\tIMPORTANCE")
	for _, e := range events {
		date := e.Date
		if !e.Time.IsZero() {
			date = e.Time.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", date, e.Title, e.Country, e.Importance)
	}
	if err := tw.Flush(); err != nil {
		log.Printf("error printing events: %s", err.Error())
	}
}

// ScheduledCalendarUpdate regenerates the calendar every day at the configured UTC time.
func (s service) ScheduledCalendarUpdate(ctx context.Context) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(1).Day().At(s.config.ScheduleAt).Do(func() {
		if _, err := s.Run(ctx); err != nil {
			log.Printf("scheduled calendar update failed: %s", err.Error())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("error creating job: %w", err)
	}
	scheduler.StartAsync()
	_, t := scheduler.NextRun()
	log.Printf("next run at: %s", t)
	return scheduler, nil
}

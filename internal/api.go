package internal

import (
	"encoding/json"
	"errors"
	"github.com/gorilla/mux"
	"io/fs"
	"log"
	"net/http"
	"os"
)

func RegisterHandlers(router *mux.Router, service Service) {
	routes := map[string]http.HandlerFunc{
		"/calendar.ics": HandleCalendarFile(service),
		"/events":       HandleHighImpactEvents(service),
		"/healthz":      HandleHealthz,
	}
	for path, handler := range routes {
		router.HandleFunc(path, handler).Methods(http.MethodGet)
		// mux answers 404 for a method mismatch inside a subrouter, so the
		// remaining methods are caught here.
		router.HandleFunc(path, HandleMethodNotAllowed)
	}
}

func HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

// HandleCalendarFile serves the last calendar written by a run.
func HandleCalendarFile(service Service) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(service.OutputFile())
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "calendar not generated yet", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("could not read calendar file %s", err.Error())
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		if _, err := w.Write(data); err != nil {
			log.Printf("error writing calendar response: %s", err.Error())
		}
	}
}

// HandleHighImpactEvents fetches and filters the events on demand.
func HandleHighImpactEvents(service Service) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		events := BuildEvents(service.HighImpactEvents(r.Context()))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(events); err != nil {
			log.Printf("error encoding events %s", err.Error())
		}
	}
}

func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Printf("error writing healthz response: %s", err.Error())
	}
}

package main

import (
	"context"
	"ecocal/conf"
	"ecocal/internal"
	"flag"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"log"
	"net/http"
	"os"
)

func main() {

	configPath := flag.String("config", conf.DefaultConfigFile, "path to the json config file")
	schedule := flag.Bool("schedule", false, "regenerate the calendar every day instead of exiting")
	serve := flag.Bool("serve", false, "serve the generated calendar over http")
	flag.Parse()

	cfg, err := conf.Load(*configPath)
	if err != nil {
		log.Fatalf("could not decode config %s\n", err.Error())
	}

	ctx := context.Background()

	var opts []internal.Option
	if cfg.SheetsEnabled() {
		sheetsService, err := internal.NewSheetsService(ctx, cfg.KeyFile)
		if err != nil {
			log.Fatalf("Unable to create Google Sheets service: %v", err)
		}
		opts = append(opts, internal.WithExporter(internal.NewSheetsExporter(sheetsService, cfg.SpreadsheetId, cfg.WriteRange)))
	}

	service := internal.NewService(cfg, opts...)

	if _, err := service.Run(ctx); err != nil {
		log.Fatalf("could not write calendar %s\n", err.Error())
	}

	if !*schedule && !*serve {
		return
	}

	if *schedule {
		if _, err := service.ScheduledCalendarUpdate(ctx); err != nil {
			log.Fatalf("could not schedule calendar update %s\n", err.Error())
		}
	}

	if !*serve {
		select {}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	server := &http.Server{
		Addr:    cfg.Address + ":" + port,
		Handler: buildHandler(service),
	}

	log.Println("Listening ", server.Addr)
	err = server.ListenAndServe()
	log.Fatalln(err)
}

func buildHandler(service internal.Service) http.Handler {

	//all APIs are under "/api/v1" path prefix
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"Content-Type"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	})

	routerGroup := router.PathPrefix("/api/v1").Subrouter()
	internal.RegisterHandlers(routerGroup, service)
	handler := c.Handler(router)
	return handler
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Println(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

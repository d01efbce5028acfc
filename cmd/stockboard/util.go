package main

import (
	"net/http"
	"time"

	"stockboard/api"
	"stockboard/internal"
	"stockboard/internal/logger"
)

func initializeDependencies(dataSpec string) *api.ApiHandler {
	log := logger.New()

	httpClient := &http.Client{Timeout: 15 * time.Second}
	quotes := internal.NewYahooQuoteService(httpClient)
	board := internal.NewBoardService(
		internal.NewDataSource(dataSpec, httpClient),
		internal.NewEnricher(quotes),
	)

	return &api.ApiHandler{
		Board: board,
		Log:   log,
	}
}

package internal

import (
	"context"
	"sync"
	"time"

	"stockboard/internal/domain"
	"stockboard/internal/logger"
)

// Enricher resolves live prices for a batch of positions. Lookups run
// concurrently, one per position, and per-item failures degrade that one
// position to zeroed derived fields instead of failing the batch.
type Enricher struct {
	quotes  QuoteService
	timeout time.Duration
}

func NewEnricher(quotes QuoteService) *Enricher {
	return &Enricher{
		quotes:  quotes,
		timeout: quoteTimeout,
	}
}

// Enrich returns enriched positions in the same order and length as the
// input. Total wall-clock time is bounded by the slowest single lookup.
func (e *Enricher) Enrich(ctx context.Context, positions []domain.Position) []domain.EnrichedPosition {
	log := logger.FromContext(ctx)
	enriched := make([]domain.EnrichedPosition, len(positions))

	var wg sync.WaitGroup
	for i, position := range positions {
		wg.Add(1)
		go func(i int, position domain.Position) {
			defer wg.Done()

			reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			price, err := e.quotes.LatestPrice(reqCtx, position.Ticker)
			if err != nil {
				// logged, never surfaced - the row renders with zeroes
				log.Warnf("price lookup failed for %s: %v", position.Ticker, err)
				enriched[i] = position.Fallback()
				return
			}
			enriched[i] = position.Enriched(price)
		}(i, position)
	}
	wg.Wait()

	return enriched
}

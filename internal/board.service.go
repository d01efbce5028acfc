package internal

import (
	"context"

	"stockboard/internal/domain"
	"stockboard/internal/logger"
)

// BoardService drives one full load cycle: source -> validate -> enrich.
// Every outcome is a LoadResult; callers never see a bare error.
type BoardService struct {
	Source   DataSource
	Enricher *Enricher
}

func NewBoardService(source DataSource, enricher *Enricher) *BoardService {
	return &BoardService{Source: source, Enricher: enricher}
}

// Load runs the pipeline once. There is no retry here: a failed cycle stays
// failed until the caller explicitly asks again.
func (s *BoardService) Load(ctx context.Context) domain.LoadResult {
	log := logger.FromContext(ctx)

	raw, err := s.Source.Load(ctx)
	if err != nil {
		log.Errorw("snapshot load failed", "source", s.Source.Describe(), "error", err)
		return domain.LoadResult{Err: domain.AsLoadError(err)}
	}

	payload, err := ParsePayload(raw)
	if err != nil {
		log.Errorw("snapshot rejected", "source", s.Source.Describe(), "error", err)
		return domain.LoadResult{Raw: raw, Err: domain.AsLoadError(err)}
	}

	result := domain.LoadResult{Payload: payload, Raw: raw}
	if payload.Mode == domain.ModePortfolio {
		result.Enriched = s.Enricher.Enrich(ctx, payload.Positions)
	}
	return result
}

package internal

import (
	"encoding/json"

	"stockboard/internal/domain"
)

// ParsePayload decodes and validates one snapshot. Malformed JSON is a parse
// error; structural problems (wrong top-level shape, missing required keys,
// a non-sequence where a sequence belongs) are validation errors. Optional
// sequences default to empty so renderers never see nil.
func ParsePayload(raw []byte) (*domain.Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		if !json.Valid(raw) {
			return nil, domain.Parsef("invalid JSON: %v", err)
		}
		return nil, domain.Validationf("payload must be a JSON object")
	}

	if _, ok := fields["equity_series"]; ok {
		return parsePortfolioPayload(fields)
	}
	if _, ok := fields["series"]; ok {
		return parseTickerPayload(fields)
	}
	return nil, domain.Validationf("payload missing equity_series (portfolio) or series (single ticker)")
}

func parsePortfolioPayload(fields map[string]json.RawMessage) (*domain.Payload, error) {
	p := &domain.Payload{Mode: domain.ModePortfolio}

	if err := unmarshalField(fields, "title", &p.Title); err != nil {
		return nil, err
	}
	if err := unmarshalField(fields, "updated_at", &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalField(fields, "invested_cost_basis", &p.InvestedCostBasis); err != nil {
		return nil, err
	}
	if err := unmarshalSequence(fields, "equity_series", &p.EquitySeries); err != nil {
		return nil, err
	}
	if err := unmarshalSequence(fields, "positions", &p.Positions); err != nil {
		return nil, err
	}
	if err := unmarshalSequence(fields, "picks", &p.Picks); err != nil {
		return nil, err
	}

	if p.EquitySeries == nil {
		p.EquitySeries = []domain.EquityPoint{}
	}
	if p.Positions == nil {
		p.Positions = []domain.Position{}
	}
	if p.Picks == nil {
		p.Picks = []domain.Pick{}
	}
	return p, nil
}

func parseTickerPayload(fields map[string]json.RawMessage) (*domain.Payload, error) {
	p := &domain.Payload{Mode: domain.ModeTicker}

	if _, ok := fields["ticker"]; !ok {
		return nil, domain.Validationf("single-ticker payload missing ticker")
	}
	if err := unmarshalField(fields, "ticker", &p.Ticker); err != nil {
		return nil, err
	}
	if p.Ticker == "" {
		return nil, domain.Validationf("single-ticker payload has empty ticker")
	}
	if err := unmarshalField(fields, "updated_at", &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalSequence(fields, "series", &p.Series); err != nil {
		return nil, err
	}
	if p.Series == nil {
		p.Series = []domain.PriceSeriesPoint{}
	}
	return p, nil
}

func unmarshalField(fields map[string]json.RawMessage, key string, dst any) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return domain.Validationf("field %q: %v", key, err)
	}
	return nil
}

func unmarshalSequence(fields map[string]json.RawMessage, key string, dst any) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var probe []json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil || string(raw) == "null" {
		return domain.Validationf("field %q must be a sequence", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return domain.Validationf("field %q: %v", key, err)
	}
	return nil
}

package model

import "strings"

// QueryContext carries the slot values accumulated for one session. A nil
// slot means "unknown"; an empty string is never stored as a sentinel.
type QueryContext struct {
	Brand     *string `json:"brand,omitempty"`
	Intent    *string `json:"intent,omitempty"`
	Size      *string `json:"size,omitempty"`
	DateRange *string `json:"date_range,omitempty"`
}

// ExtractedInfo is the possibly incomplete structured output of the extractor
// for a single turn. Same slot set as QueryContext; consumed once per turn.
type ExtractedInfo struct {
	Brand     *string `json:"brand,omitempty"`
	Intent    *string `json:"intent,omitempty"`
	Size      *string `json:"size,omitempty"`
	DateRange *string `json:"date_range,omitempty"`
}

// Normalize clears blank slot values so downstream code only ever sees
// nil (unknown) or a non-empty string. Model output sometimes carries ""
// or whitespace where it means null.
func (e *ExtractedInfo) Normalize() {
	e.Brand = cleanSlot(e.Brand)
	e.Intent = cleanSlot(e.Intent)
	e.Size = cleanSlot(e.Size)
	e.DateRange = cleanSlot(e.DateRange)
}

func cleanSlot(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
		return nil
	}
	return &s
}

// MergeContext resolves the effective slot values for a turn: a slot stated
// in this turn wins and is written into the context; otherwise the prior
// session value is carried forward. Slots are sticky within a session until
// explicitly overridden by a later non-null value.
func MergeContext(prior QueryContext, turn ExtractedInfo) QueryContext {
	return QueryContext{
		Brand:     pickSlot(turn.Brand, prior.Brand),
		Intent:    pickSlot(turn.Intent, prior.Intent),
		Size:      pickSlot(turn.Size, prior.Size),
		DateRange: pickSlot(turn.DateRange, prior.DateRange),
	}
}

func pickSlot(turn, prior *string) *string {
	if turn != nil {
		return turn
	}
	return prior
}

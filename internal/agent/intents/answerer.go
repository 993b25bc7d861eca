// Package intents maps a resolved intent onto exactly one read-only lookup
// against the tyre dataset and renders the result as answer text.
package intents

import (
	"context"
	"time"

	"github.com/revozen-chatbot/server/internal/agent/model"
)

// Answerer dispatches resolved slot values to the handler selected by the
// intent. All handlers are read-only against the document store.
type Answerer struct {
	tyres  model.TyreFinder
	orders model.OrderFinder
	now    func() time.Time
}

func NewAnswerer(tyres model.TyreFinder, orders model.OrderFinder) *Answerer {
	return &Answerer{tyres: tyres, orders: orders, now: time.Now}
}

// Answer selects exactly one handler for the resolved slots. Unrecognized or
// absent intents fall through to the sales handler with brand as the product
// filter; that fallback is the router's default terminal state, not an error.
func (a *Answerer) Answer(ctx context.Context, slots model.QueryContext) (string, error) {
	switch model.ParseIntent(slots.Intent) {
	case model.IntentGetTypeBySize:
		return a.typeBySize(ctx, slots.Size)
	case model.IntentListModels:
		return a.listModels(ctx, slots.Brand)
	case model.IntentListSizes:
		return a.listSizes(ctx, slots.Brand, slots.Size)
	case model.IntentCountTypeBySize:
		return a.countTypeBySize(ctx, slots.Size)
	case model.IntentModelsAndTypesBySize:
		return a.modelsAndTypesBySize(ctx, slots.Size)
	case model.IntentTubelessSizesByBrand:
		return a.tubelessSizesByBrand(ctx, slots.Brand)
	case model.IntentSales:
		return a.sales(ctx, slots.Brand, slots.DateRange)
	default:
		return a.sales(ctx, slots.Brand, slots.DateRange)
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

package intents

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/revozen-chatbot/server/internal/agent/model"
)

// typesForSize looks up every tyre stocking the size and collects the
// distinct set of type values. found reports whether any tyre matched at
// all, which is a different outcome than matching tyres with no type set.
func (a *Answerer) typesForSize(ctx context.Context, size string) (types []string, found bool, err error) {
	tyres, err := a.tyres.FindBySize(ctx, size)
	if err != nil {
		return nil, false, err
	}
	if len(tyres) == 0 {
		return nil, false, nil
	}

	seen := make(map[string]struct{})
	for _, t := range tyres {
		if t.Type == "" {
			continue
		}
		if _, ok := seen[t.Type]; ok {
			continue
		}
		seen[t.Type] = struct{}{}
		types = append(types, t.Type)
	}
	return types, true, nil
}

func (a *Answerer) typeBySize(ctx context.Context, size *string) (string, error) {
	if size == nil {
		return "Please specify a tyre size.", nil
	}
	types, found, err := a.typesForSize(ctx, *size)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("No tyres found with size %s.", *size), nil
	}
	if len(types) == 0 {
		return fmt.Sprintf("Found tyres with size %s, but their type is not specified.", *size), nil
	}
	return fmt.Sprintf("The type(s) of tyre used for size %s is/are: %s.", *size, strings.Join(types, ", ")), nil
}

func (a *Answerer) countTypeBySize(ctx context.Context, size *string) (string, error) {
	if size == nil {
		return "Please specify a tyre size.", nil
	}
	types, found, err := a.typesForSize(ctx, *size)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("No tyres found with size %s.", *size), nil
	}
	if len(types) == 0 {
		return fmt.Sprintf("Found tyres with size %s, but their type is not specified.", *size), nil
	}
	count := len(types)
	verb, plural := "are", "s"
	if count == 1 {
		verb, plural = "is", ""
	}
	return fmt.Sprintf("There %s %d type%s of tyre used for size %s in the inventory.", verb, count, plural, *size), nil
}

func (a *Answerer) listModels(ctx context.Context, brand *string) (string, error) {
	label := brandLabel(brand)
	tyres, err := a.tyres.FindByBrand(ctx, deref(brand))
	if err != nil {
		return "", err
	}

	// Duplicates are kept on purpose: the admin wants one entry per tyre
	// document, not a deduplicated catalogue.
	models := make([]string, 0, len(tyres))
	for _, t := range tyres {
		models = append(models, t.Model)
	}
	if len(models) == 0 {
		return fmt.Sprintf("No models found for the brand %s.", label), nil
	}
	return fmt.Sprintf("Models available for %s: %s.", label, strings.Join(models, ", ")), nil
}

// sizeTriple is one (model, brand, size) hit for an exact-size lookup.
type sizeTriple struct {
	Model string
	Brand string
	Size  string
}

func (a *Answerer) sizeTriples(ctx context.Context, brand, size string) ([]sizeTriple, error) {
	tyres, err := a.tyres.FindByBrand(ctx, brand)
	if err != nil {
		return nil, err
	}
	var triples []sizeTriple
	for _, t := range tyres {
		for _, st := range t.Stock {
			if st.Size == size {
				triples = append(triples, sizeTriple{Model: t.Model, Brand: t.Brand, Size: size})
			}
		}
	}
	return triples, nil
}

func (a *Answerer) listSizes(ctx context.Context, brand, size *string) (string, error) {
	label := brandLabel(brand)

	// Exact-size lookup: every (model, brand, size) triple stocking the size.
	if size != nil {
		triples, err := a.sizeTriples(ctx, deref(brand), *size)
		if err != nil {
			return "", err
		}
		if len(triples) == 0 {
			return fmt.Sprintf("No sizes found for %s.", label), nil
		}
		entries := make([]string, 0, len(triples))
		for _, tr := range triples {
			entries = append(entries, fmt.Sprintf("%s %s (%s)", tr.Brand, tr.Model, tr.Size))
		}
		return fmt.Sprintf("Tyres found for size %s: %s.", *size, strings.Join(entries, ", ")), nil
	}

	// No size given: per-tyre size lists grouped by model.
	tyres, err := a.tyres.FindByBrand(ctx, deref(brand))
	if err != nil {
		return "", err
	}
	var parts []string
	for _, t := range tyres {
		var sizes []string
		for _, st := range t.Stock {
			if st.Size != "" {
				sizes = append(sizes, st.Size)
			}
		}
		if len(sizes) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("Model %s (%s): Sizes %s", t.Model, t.Brand, strings.Join(sizes, ", ")))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("No sizes found for %s models.", label), nil
	}
	return "Available sizes:\n" + strings.Join(parts, "\n"), nil
}

func (a *Answerer) modelsAndTypesBySize(ctx context.Context, size *string) (string, error) {
	if size == nil {
		return "Please specify a tyre size.", nil
	}

	triples, err := a.sizeTriples(ctx, "", *size)
	if err != nil {
		return "", err
	}
	types, _, err := a.typesForSize(ctx, *size)
	if err != nil {
		return "", err
	}

	var parts []string
	if len(triples) > 0 {
		models := make([]string, 0, len(triples))
		for _, tr := range triples {
			models = append(models, fmt.Sprintf("%s %s", tr.Brand, tr.Model))
		}
		parts = append(parts, fmt.Sprintf("Models available for size %s: %s.", *size, strings.Join(models, ", ")))
	}
	if len(types) > 0 {
		parts = append(parts, fmt.Sprintf("Tyre type(s) for size %s: %s.", *size, strings.Join(types, ", ")))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("No models or types found for size %s.", *size), nil
	}
	return strings.Join(parts, " "), nil
}

func (a *Answerer) tubelessSizesByBrand(ctx context.Context, brand *string) (string, error) {
	label := brandLabel(brand)
	tyres, err := a.tyres.FindTubeless(ctx, deref(brand))
	if err != nil {
		return "", err
	}
	if len(tyres) == 0 {
		return fmt.Sprintf("No tubeless tyres found for %s.", label), nil
	}

	// Distinct sizes across all matching tyres' stock, sorted for
	// deterministic output. The count reports tyre documents, not stock rows.
	sizeSet := make(map[string]struct{})
	for _, t := range tyres {
		for _, st := range t.Stock {
			if st.Size != "" {
				sizeSet[st.Size] = struct{}{}
			}
		}
	}
	sizes := make([]string, 0, len(sizeSet))
	for s := range sizeSet {
		sizes = append(sizes, s)
	}
	sort.Strings(sizes)

	return fmt.Sprintf("There are %d tubeless tyres for %s. Sizes: %s.", len(tyres), label, strings.Join(sizes, ", ")), nil
}

func (a *Answerer) sales(ctx context.Context, brand, dateRange *string) (string, error) {
	product := deref(brand)

	tyres, err := a.tyres.FindByBrand(ctx, product)
	if err != nil {
		return "", err
	}
	tyreIDs := make([]primitive.ObjectID, 0, len(tyres))
	idSet := make(map[primitive.ObjectID]struct{}, len(tyres))
	tyreNames := make([]string, 0, len(tyres))
	for _, t := range tyres {
		tyreIDs = append(tyreIDs, t.ID)
		idSet[t.ID] = struct{}{}
		name := t.Brand
		if name == "" {
			name = t.ID.Hex()
		}
		tyreNames = append(tyreNames, name)
	}

	var window *model.DateWindow
	if dateRange != nil && strings.Contains(strings.ToLower(*dateRange), "last year") {
		y := a.now().Year() - 1
		window = &model.DateWindow{
			Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.Local),
			End:   time.Date(y, time.December, 31, 23, 59, 59, 0, time.Local),
		}
	}

	// An empty candidate set means an unfiltered order query: absence of a
	// product match does not mean zero orders (see DESIGN.md).
	orders, err := a.orders.FindOrders(ctx, tyreIDs, window)
	if err != nil {
		return "", err
	}

	var totalQuantity int
	var totalSales float64
	for _, o := range orders {
		for _, item := range o.OrderItems {
			if _, ok := idSet[item.Tyre]; !ok {
				continue
			}
			totalQuantity += item.Quantity
			totalSales += item.TotalPrice
		}
	}

	if len(orders) == 0 {
		return fmt.Sprintf("No orders found for %s in the specified period.", brandLabel(brand)), nil
	}

	var parts []string
	if len(tyreNames) > 0 {
		parts = append(parts, fmt.Sprintf("Found orders for tyres: %s", strings.Join(tyreNames, ", ")))
	}
	if totalQuantity > 0 {
		parts = append(parts, fmt.Sprintf("Total quantity ordered: %d", totalQuantity))
	}
	if totalSales > 0 {
		parts = append(parts, fmt.Sprintf("Total sales amount: %s", strconv.FormatFloat(totalSales, 'f', -1, 64)))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Found %d orders, but no quantity or sales data.", len(orders)), nil
	}
	return fmt.Sprintf("Found %d orders. %s", len(orders), strings.Join(parts, " ")), nil
}

func brandLabel(brand *string) string {
	if brand == nil || *brand == "" {
		return "the specified brand"
	}
	return *brand
}

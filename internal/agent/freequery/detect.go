package freequery

// Target names the collection a synthesized query should run against.
type Target int

const (
	// TargetAmbiguous marks a query whose shape names no known collection.
	// The service rejects it rather than silently defaulting.
	TargetAmbiguous Target = iota
	TargetInventory
	TargetOrders
)

// Collection names in the tyres database.
const (
	InventoryCollection = "addtyres"
	OrdersCollection    = "clientorders"
)

func (t Target) Collection() string {
	switch t {
	case TargetInventory:
		return InventoryCollection
	case TargetOrders:
		return OrdersCollection
	default:
		return ""
	}
}

func (t Target) String() string {
	if c := t.Collection(); c != "" {
		return c
	}
	return "ambiguous"
}

// DetectCollection guesses the target collection from the parsed query's
// shape alone; no model call, no schema validation. A pipeline joining or
// filtering on order-only fields targets orders; a filter object carrying a
// user or client-type field targets orders; a "find" field is a nested
// directive naming the collection directly. Everything else defaults to
// inventory. This is a structural best-effort guess and can misroute
// unusual queries.
func DetectCollection(query any) Target {
	switch q := query.(type) {
	case []any:
		for _, stage := range q {
			m, ok := stage.(map[string]any)
			if !ok {
				continue
			}
			if lookup, ok := m["$lookup"].(map[string]any); ok {
				if from, _ := lookup["from"].(string); from == OrdersCollection {
					return TargetOrders
				}
			}
			if match, ok := m["$match"].(map[string]any); ok {
				if _, ok := match["clientType"]; ok {
					return TargetOrders
				}
			}
		}
		return TargetInventory
	case map[string]any:
		if _, ok := q["userId"]; ok {
			return TargetOrders
		}
		if _, ok := q["clientType"]; ok {
			return TargetOrders
		}
		if name, ok := q["find"]; ok {
			switch name {
			case InventoryCollection:
				return TargetInventory
			case OrdersCollection:
				return TargetOrders
			default:
				return TargetAmbiguous
			}
		}
		return TargetInventory
	default:
		return TargetAmbiguous
	}
}

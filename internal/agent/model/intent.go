package model

// Intent classifies the purpose of a question and selects the handler that
// answers it. The set is closed; anything unrecognized resolves to
// IntentSales, the router's default terminal state.
type Intent string

const (
	IntentGetTypeBySize        Intent = "get_type_by_size"
	IntentListModels           Intent = "list_models"
	IntentListSizes            Intent = "list_sizes"
	IntentCountTypeBySize      Intent = "count_type_by_size"
	IntentModelsAndTypesBySize Intent = "models_and_types_by_size"
	IntentTubelessSizesByBrand Intent = "tubeless_sizes_by_brand"
	IntentSales                Intent = "get_sales"
)

// ParseIntent maps the free-form intent slot onto the closed enumeration.
// Unset or unrecognized values fall through to IntentSales: an unclassified
// question is treated as a sales inquiry with brand as the product filter.
func ParseIntent(v *string) Intent {
	if v == nil {
		return IntentSales
	}
	switch Intent(*v) {
	case IntentGetTypeBySize,
		IntentListModels,
		IntentListSizes,
		IntentCountTypeBySize,
		IntentModelsAndTypesBySize,
		IntentTubelessSizesByBrand:
		return Intent(*v)
	default:
		return IntentSales
	}
}

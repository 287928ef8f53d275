package dto

// SuggestionResponse respuesta de GET /api/inventory/replenishment-suggestion.
type SuggestionResponse struct {
	ProductID          string             `json:"product_id"`
	SKU                string             `json:"sku"`
	StrategyUsed       string             `json:"strategy_used"`
	SuggestedQuantity  int64              `json:"suggested_quantity"`
	ReorderPoint       int64              `json:"reorder_point"`
	StockOnHand        int64              `json:"stock_on_hand"`
	NeedsReplenishment bool               `json:"needs_replenishment"`
	Reason             string             `json:"reason"`
	Params             map[string]float64 `json:"params"`
}

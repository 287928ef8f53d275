package repository

// IndicatorRepository define el puerto para los snapshots de indicadores
// derivados (KPIs). Las recomputaciones son idempotentes: los observadores
// toleran entrega at-least-once.
type IndicatorRepository interface {
	// RefreshStockIndicator recalcula el snapshot de un producto a partir
	// de su stock actual y su historial de movimientos.
	RefreshStockIndicator(productID string) error
	// RefreshRequestIndicators recalcula los conteos de solicitudes por estado.
	RefreshRequestIndicators() error
}

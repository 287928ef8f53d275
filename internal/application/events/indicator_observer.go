package events

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// IndicatorObserver recalcula los snapshots de KPIs cuando cambia el stock
// o el estado de una solicitud. La recomputación es idempotente, por lo que
// la entrega at-least-once del bus es segura.
type IndicatorObserver struct {
	indicatorRepo repository.IndicatorRepository
}

// NewIndicatorObserver construye el observador de indicadores.
func NewIndicatorObserver(indicatorRepo repository.IndicatorRepository) *IndicatorObserver {
	return &IndicatorObserver{indicatorRepo: indicatorRepo}
}

// Name identifica al observador.
func (o *IndicatorObserver) Name() string { return "indicator-recompute" }

// Handle recalcula el snapshot correspondiente al tipo de evento.
func (o *IndicatorObserver) Handle(_ context.Context, ev event.Event) error {
	switch e := ev.(type) {
	case event.StockChanged:
		return o.indicatorRepo.RefreshStockIndicator(e.ProductID)
	case event.RequestStateChanged:
		return o.indicatorRepo.RefreshRequestIndicators()
	}
	return nil
}

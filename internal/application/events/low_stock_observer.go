package events

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// LowStockObserver alerta cuando un movimiento deja el stock en o por debajo
// del mínimo del producto. Corre fuera del camino de escritura.
type LowStockObserver struct {
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewLowStockObserver construye el observador de alertas de stock bajo.
func NewLowStockObserver(productRepo repository.ProductRepository, log *logger.Logger) *LowStockObserver {
	return &LowStockObserver{productRepo: productRepo, log: log}
}

// Name identifica al observador.
func (o *LowStockObserver) Name() string { return "low-stock-alert" }

// Handle evalúa StockChanged contra el stock mínimo del producto.
func (o *LowStockObserver) Handle(_ context.Context, ev event.Event) error {
	sc, ok := ev.(event.StockChanged)
	if !ok {
		return nil
	}
	product, err := o.productRepo.GetByID(sc.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return nil
	}
	if sc.StockAfter <= product.MinStock {
		o.log.Warn().
			Str("product_id", product.ID).
			Str("sku", product.SKU).
			Int64("stock_on_hand", sc.StockAfter).
			Int64("min_stock", product.MinStock).
			Msg("alerta: stock en o por debajo del mínimo")
	}
	return nil
}

package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock solo debe usarse dentro de la transacción del ledger.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar movimientos concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, stockOnHand int64) error
	List(limit, offset int) ([]*entity.Product, error)
}

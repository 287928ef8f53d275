package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CatalogUseCase administra el catálogo de productos. El stock NUNCA se toca
// por aquí: solo el ledger de movimientos modifica stock_on_hand.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso del catálogo.
func NewCatalogUseCase(productRepo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo}
}

// CreateProductInput entrada para dar de alta un producto.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	MinStock    int64
	UnitCost    decimal.Decimal
}

// CreateProduct da de alta un producto activo con stock inicial cero.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	if input.SKU == "" || input.Name == "" || input.MinStock < 0 || input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKU(input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		StockOnHand: 0,
		MinStock:    input.MinStock,
		UnitCost:    input.UnitCost,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista el catálogo con paginación.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.productRepo.List(limit, offset)
}

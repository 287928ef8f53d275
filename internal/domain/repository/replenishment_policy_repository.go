package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ReplenishmentPolicyRepository define el puerto de persistencia para políticas de reposición.
type ReplenishmentPolicyRepository interface {
	GetByProduct(productID string) (*entity.ReplenishmentPolicy, error)
	Upsert(policy *entity.ReplenishmentPolicy) error
}

package repositories

import "sako/internal/models"

// OwnerRepository persists the stall's single owner account. Get
// returns the one owner row when it exists; callers use it to decide
// whether the bootstrap registration is still open.
type OwnerRepository interface {
	Get() (*models.Owner, error)
	GetByUsername(username string) (*models.Owner, error)
	Create(owner *models.Owner) error
}

package repositories

import (
	"fmt"

	"sako/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOwnerRepository is a GORM implementation of OwnerRepository.
type GORMOwnerRepository struct {
	db *gorm.DB
}

// NewGORMOwnerRepository creates a new instance of GORMOwnerRepository.
func NewGORMOwnerRepository(db *gorm.DB) *GORMOwnerRepository {
	return &GORMOwnerRepository{
		db: db,
	}
}

// Get retrieves the owner account. The table holds at most one row.
func (r *GORMOwnerRepository) Get() (*models.Owner, error) {
	var owner models.Owner
	if err := r.db.First(&owner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("owner account not found")
		}
		return nil, fmt.Errorf("failed to get owner account: %w", err)
	}
	return &owner, nil
}

// GetByUsername retrieves the owner account by username, for login.
func (r *GORMOwnerRepository) GetByUsername(username string) (*models.Owner, error) {
	var owner models.Owner
	if err := r.db.First(&owner, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("owner with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get owner by username %s: %w", username, err)
	}
	return &owner, nil
}

// Create stores the owner account. Uniqueness of the single row is the
// auth service's responsibility; this just persists.
func (r *GORMOwnerRepository) Create(owner *models.Owner) error {
	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	if err := r.db.Create(owner).Error; err != nil {
		return fmt.Errorf("failed to create owner account: %w", err)
	}
	return nil
}

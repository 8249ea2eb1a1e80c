package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"careercrafter/career-crafter-api/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create returns ErrDuplicate when the name is taken. The database must be
// opened with gorm's TranslateError option for the unique violation to map.
func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %q: %w", user.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

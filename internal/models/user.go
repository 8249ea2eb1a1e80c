package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Age          *int      `json:"age,omitempty"`
	Skills       []string  `gorm:"type:jsonb;serializer:json" json:"skills"`
	SalaryMin    *float64  `json:"salary_min,omitempty"`
	SalaryMax    *float64  `json:"salary_max,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded resume kept in file storage.
type Document struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StorageKey       string         `gorm:"type:text;not null" json:"storage_key"`
	StorageDriver    string         `gorm:"type:text;not null" json:"storage_driver"`
	OriginalFileName string         `gorm:"type:text" json:"original_filename"`
	Format           DocumentFormat `gorm:"type:text" json:"format"`
	ContentType      string         `gorm:"type:text" json:"content_type"`
	Size             int64          `json:"size"`
	CreatedAt        time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}

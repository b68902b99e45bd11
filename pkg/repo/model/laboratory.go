package model

import (
	"time"

	"github.com/agrigouv/pspc/pkg/common/uuid"
)

// Laboratory is a destination lab for dispatched samples.
type Laboratory struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"not null" json:"email"`
}

func (*Laboratory) TableName() string {
	return "laboratories"
}

// Document is a stored support document; sample items may link one.
type Document struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Filename  string    `gorm:"not null" json:"filename"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (*Document) TableName() string {
	return "documents"
}

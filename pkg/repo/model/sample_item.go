package model

import (
	"github.com/agrigouv/pspc/pkg/common/uuid"
)

// SampleItem is one physical sub-unit of a sample. The set of items is
// always replaced whole, never patched item by item.
type SampleItem struct {
	SampleID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"sample_id"`
	ItemNumber       int        `gorm:"primaryKey;autoIncrement:false" json:"item_number"`
	Quantity         *float64   `json:"quantity,omitempty"`
	QuantityUnit     *string    `json:"quantity_unit,omitempty"`
	SealID           *string    `json:"seal_id,omitempty"`
	Compliance200263 *bool      `json:"compliance200263,omitempty"`
	DocumentID       *uuid.UUID `gorm:"type:uuid" json:"document_id,omitempty"`
}

func (*SampleItem) TableName() string {
	return "sample_items"
}

package model

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/uuid"
)

// Geolocation is persisted as a native postgres point.
type Geolocation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (Geolocation) GormDataType() string {
	return "point"
}

func (g Geolocation) GormValue(_ context.Context, _ *gorm.DB) clause.Expr {
	return clause.Expr{SQL: "point(?, ?)", Vars: []any{g.X, g.Y}}
}

// Scan parses the postgres point text form "(x,y)".
func (g *Geolocation) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported point value %T", value)
	}
	if _, err := fmt.Sscanf(raw, "(%f,%f)", &g.X, &g.Y); err != nil {
		return fmt.Errorf("parse point %q: %w", raw, err)
	}
	return nil
}

// Sample is the central entity. Fields past the provenance block are filled
// in incrementally across the wizard steps, hence the pointers: a nil field
// was not supplied and must never overwrite a stored value.
type Sample struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Reference string       `gorm:"not null;uniqueIndex" json:"reference"`
	Status    SampleStatus `gorm:"not null" json:"status"`

	// step 1 - context
	Department        string        `gorm:"not null" json:"department"`
	LegalContext      string        `gorm:"not null" json:"legal_context"`
	Geolocation       *Geolocation  `gorm:"type:point" json:"geolocation,omitempty"`
	SampledAt         *time.Time    `json:"sampled_at,omitempty"`
	ResytalID         *string       `json:"resytal_id,omitempty"`
	ProgrammingPlanID *uuid.UUID    `gorm:"type:uuid" json:"programming_plan_id,omitempty"`
	Parcel            *string       `json:"parcel,omitempty"`
	CommentCreation   *string       `json:"comment_creation,omitempty"`

	// step 2 - matrix
	Matrix                 *string    `json:"matrix,omitempty"`
	MatrixDetails          *string    `json:"matrix_details,omitempty"`
	MatrixPart             *string    `json:"matrix_part,omitempty"`
	Stage                  *string    `json:"stage,omitempty"`
	CultureKind            *string    `json:"culture_kind,omitempty"`
	ReleaseControl         *bool      `json:"release_control,omitempty"`
	TemperatureMaintenance *bool      `json:"temperature_maintenance,omitempty"`
	ExpiryDate             *time.Time `json:"expiry_date,omitempty"`
	StorageCondition       *string    `json:"storage_condition,omitempty"`
	LocationSiret          *string    `json:"location_siret,omitempty"`
	LocationName           *string    `json:"location_name,omitempty"`
	Comment                *string    `json:"comment,omitempty"`

	// step 4 - dispatch
	LaboratoryID *uuid.UUID `gorm:"type:uuid" json:"laboratory_id,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`

	CreatedBy     uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`

	// Items are loaded and replaced through the item repository, never by
	// gorm association writes.
	Items []SampleItem `gorm:"-:all" json:"items,omitempty"`
}

func (*Sample) TableName() string {
	return "samples"
}

// Merge overlays the supplied (sparse) patch onto s. Only non-nil fields of
// the patch are taken; id, reference, status and provenance are never
// touched here.
func (s *Sample) Merge(patch *Sample) {
	if patch.Geolocation != nil {
		s.Geolocation = patch.Geolocation
	}
	if patch.SampledAt != nil {
		s.SampledAt = patch.SampledAt
	}
	if patch.ResytalID != nil {
		s.ResytalID = patch.ResytalID
	}
	if patch.ProgrammingPlanID != nil {
		s.ProgrammingPlanID = patch.ProgrammingPlanID
	}
	if patch.Parcel != nil {
		s.Parcel = patch.Parcel
	}
	if patch.CommentCreation != nil {
		s.CommentCreation = patch.CommentCreation
	}
	if patch.Department != "" {
		s.Department = patch.Department
	}
	if patch.LegalContext != "" {
		s.LegalContext = patch.LegalContext
	}
	if patch.Matrix != nil {
		s.Matrix = patch.Matrix
	}
	if patch.MatrixDetails != nil {
		s.MatrixDetails = patch.MatrixDetails
	}
	if patch.MatrixPart != nil {
		s.MatrixPart = patch.MatrixPart
	}
	if patch.Stage != nil {
		s.Stage = patch.Stage
	}
	if patch.CultureKind != nil {
		s.CultureKind = patch.CultureKind
	}
	if patch.ReleaseControl != nil {
		s.ReleaseControl = patch.ReleaseControl
	}
	if patch.TemperatureMaintenance != nil {
		s.TemperatureMaintenance = patch.TemperatureMaintenance
	}
	if patch.ExpiryDate != nil {
		s.ExpiryDate = patch.ExpiryDate
	}
	if patch.StorageCondition != nil {
		s.StorageCondition = patch.StorageCondition
	}
	if patch.LocationSiret != nil {
		s.LocationSiret = patch.LocationSiret
	}
	if patch.LocationName != nil {
		s.LocationName = patch.LocationName
	}
	if patch.Comment != nil {
		s.Comment = patch.Comment
	}
	if patch.LaboratoryID != nil {
		s.LaboratoryID = patch.LaboratoryID
	}
}

// Region returns the region covering the sample's department, if any.
func (s *Sample) Region() (common.Region, bool) {
	for _, r := range common.RegionList {
		if r.CoversDepartment(s.Department) {
			return r, true
		}
	}
	return "", false
}

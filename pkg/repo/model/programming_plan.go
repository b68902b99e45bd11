package model

import (
	"time"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/uuid"
)

type ProgrammingPlanKind string

const (
	PlanSurveillance ProgrammingPlanKind = "Surveillance"
	PlanControl      ProgrammingPlanKind = "Control"
)

type ProgrammingPlanStatus string

const (
	PlanInProgress ProgrammingPlanStatus = "InProgress"
	PlanSubmitted  ProgrammingPlanStatus = "Submitted"
	PlanValidated  ProgrammingPlanStatus = "Validated"
)

// ProgrammingPlan is an administrative sampling campaign. A sample may
// reference one; no reference means "outside programming".
type ProgrammingPlan struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string                `gorm:"not null" json:"title"`
	Kind      ProgrammingPlanKind   `gorm:"not null" json:"kind"`
	Status    ProgrammingPlanStatus `gorm:"not null;default:InProgress" json:"status"`
	CreatedBy uuid.UUID             `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time             `json:"created_at"`
}

func (*ProgrammingPlan) TableName() string {
	return "programming_plans"
}

// Prescription allocates a sample count to a region, matrix and stage within
// a programming plan.
type Prescription struct {
	ID                uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ProgrammingPlanID uuid.UUID     `gorm:"type:uuid;not null;index" json:"programming_plan_id"`
	Region            common.Region `gorm:"not null" json:"region"`
	SampleMatrix      string        `gorm:"not null" json:"sample_matrix"`
	SampleStage       string        `gorm:"not null" json:"sample_stage"`
	SampleCount       int           `gorm:"not null" json:"sample_count"`
}

func (*Prescription) TableName() string {
	return "prescriptions"
}

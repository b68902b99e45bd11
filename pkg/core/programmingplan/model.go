package programmingplan

import (
	"context"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

type FindPlansReq struct {
	Status *model.ProgrammingPlanStatus `form:"status"`
}

type PrescriptionToCreate struct {
	Region       common.Region `json:"region" binding:"required"`
	SampleMatrix string        `json:"sample_matrix" binding:"required"`
	SampleStage  string        `json:"sample_stage" binding:"required"`
	SampleCount  int           `json:"sample_count" binding:"required"`
}

type PrescriptionUpdate struct {
	SampleCount int `json:"sample_count" binding:"required"`
}

type Service interface {
	GetProgrammingPlan(ctx context.Context, id uuid.UUID) (*model.ProgrammingPlan, error)
	FindProgrammingPlans(ctx context.Context, req *FindPlansReq) ([]*model.ProgrammingPlan, error)
	FindPrescriptions(ctx context.Context, planID uuid.UUID, region *common.Region) ([]*model.Prescription, error)
	CreatePrescriptions(ctx context.Context, planID uuid.UUID, toCreate []PrescriptionToCreate) ([]*model.Prescription, error)
	UpdatePrescription(ctx context.Context, planID uuid.UUID, id uuid.UUID, update *PrescriptionUpdate) (*model.Prescription, error)
	DeletePrescription(ctx context.Context, planID uuid.UUID, id uuid.UUID) error
}

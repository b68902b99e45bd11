package repo

import (
	"context"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

type FindProgrammingPlanOptions struct {
	Status *model.ProgrammingPlanStatus
}

type ProgrammingPlanRepo interface {
	FindUnique(ctx context.Context, id uuid.UUID) (*model.ProgrammingPlan, error)
	FindMany(ctx context.Context, opts *FindProgrammingPlanOptions) ([]*model.ProgrammingPlan, error)
	Insert(ctx context.Context, plan *model.ProgrammingPlan) error
}

type FindPrescriptionOptions struct {
	ProgrammingPlanID uuid.UUID
	Region            *common.Region
}

type PrescriptionRepo interface {
	FindUnique(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	FindMany(ctx context.Context, opts *FindPrescriptionOptions) ([]*model.Prescription, error)
	Insert(ctx context.Context, prescriptions []*model.Prescription) error
	Update(ctx context.Context, prescription *model.Prescription) error
	DeleteOne(ctx context.Context, id uuid.UUID) error
}

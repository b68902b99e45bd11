package programmingplan

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/middleware/db"
	"github.com/agrigouv/pspc/pkg/repo"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

type planImpl struct {
	*db.Datastore
}

func NewProgrammingPlanRepo() repo.ProgrammingPlanRepo {
	return &planImpl{Datastore: db.DB()}
}

func (p *planImpl) FindUnique(ctx context.Context, id uuid.UUID) (*model.ProgrammingPlan, error) {
	plan := &model.ProgrammingPlan{}
	err := p.DBWithContext(ctx).Where("id = ?", id).First(plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return plan, nil
}

func (p *planImpl) FindMany(ctx context.Context, opts *repo.FindProgrammingPlanOptions) ([]*model.ProgrammingPlan, error) {
	var plans []*model.ProgrammingPlan
	q := p.DBWithContext(ctx).Model(&model.ProgrammingPlan{})
	if opts != nil && opts.Status != nil {
		q = q.Where("status = ?", *opts.Status)
	}
	if err := q.Order("created_at ASC").Find(&plans).Error; err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return plans, nil
}

func (p *planImpl) Insert(ctx context.Context, plan *model.ProgrammingPlan) error {
	if err := p.DBWithContext(ctx).Create(plan).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

type prescriptionImpl struct {
	*db.Datastore
}

func NewPrescriptionRepo() repo.PrescriptionRepo {
	return &prescriptionImpl{Datastore: db.DB()}
}

func (p *prescriptionImpl) FindUnique(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	prescription := &model.Prescription{}
	err := p.DBWithContext(ctx).Where("id = ?", id).First(prescription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return prescription, nil
}

func (p *prescriptionImpl) FindMany(ctx context.Context, opts *repo.FindPrescriptionOptions) ([]*model.Prescription, error) {
	var prescriptions []*model.Prescription
	q := p.DBWithContext(ctx).Model(&model.Prescription{}).
		Where("programming_plan_id = ?", opts.ProgrammingPlanID)
	if opts.Region != nil {
		q = q.Where("region = ?", *opts.Region)
	}
	if err := q.Order("sample_matrix ASC").Find(&prescriptions).Error; err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return prescriptions, nil
}

func (p *prescriptionImpl) Insert(ctx context.Context, prescriptions []*model.Prescription) error {
	if len(prescriptions) == 0 {
		return nil
	}
	if err := p.DBWithContext(ctx).Create(&prescriptions).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (p *prescriptionImpl) Update(ctx context.Context, prescription *model.Prescription) error {
	err := p.DBWithContext(ctx).
		Model(&model.Prescription{}).
		Where("id = ?", prescription.ID).
		Update("sample_count", prescription.SampleCount).Error
	if err != nil {
		return code.UpdateDataErr.WithErr(err)
	}
	return nil
}

func (p *prescriptionImpl) DeleteOne(ctx context.Context, id uuid.UUID) error {
	if err := p.DBWithContext(ctx).Where("id = ?", id).Delete(&model.Prescription{}).Error; err != nil {
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

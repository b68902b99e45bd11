package programmingplan

import (
	"context"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	core "github.com/agrigouv/pspc/pkg/core/programmingplan"
	"github.com/agrigouv/pspc/pkg/repo"
	"github.com/agrigouv/pspc/pkg/repo/model"
	pStore "github.com/agrigouv/pspc/pkg/repo/programmingplan"
)

type planImpl struct {
	planStore         repo.ProgrammingPlanRepo
	prescriptionStore repo.PrescriptionRepo
}

func NewProgrammingPlan() core.Service {
	return New(pStore.NewProgrammingPlanRepo(), pStore.NewPrescriptionRepo())
}

func New(planStore repo.ProgrammingPlanRepo, prescriptionStore repo.PrescriptionRepo) core.Service {
	return &planImpl{
		planStore:         planStore,
		prescriptionStore: prescriptionStore,
	}
}

func (p *planImpl) GetProgrammingPlan(ctx context.Context, id uuid.UUID) (*model.ProgrammingPlan, error) {
	plan, err := p.planStore.FindUnique(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, code.RecordNotFound
	}
	return plan, nil
}

func (p *planImpl) FindProgrammingPlans(ctx context.Context, req *core.FindPlansReq) ([]*model.ProgrammingPlan, error) {
	return p.planStore.FindMany(ctx, &repo.FindProgrammingPlanOptions{Status: req.Status})
}

func (p *planImpl) FindPrescriptions(ctx context.Context, planID uuid.UUID, region *common.Region) ([]*model.Prescription, error) {
	if _, err := p.GetProgrammingPlan(ctx, planID); err != nil {
		return nil, err
	}
	return p.prescriptionStore.FindMany(ctx, &repo.FindPrescriptionOptions{
		ProgrammingPlanID: planID,
		Region:            region,
	})
}

func (p *planImpl) CreatePrescriptions(ctx context.Context, planID uuid.UUID, toCreate []core.PrescriptionToCreate) ([]*model.Prescription, error) {
	if _, err := p.GetProgrammingPlan(ctx, planID); err != nil {
		return nil, err
	}
	prescriptions := make([]*model.Prescription, 0, len(toCreate))
	for _, c := range toCreate {
		if !c.Region.Valid() {
			return nil, code.ValidationErr
		}
		prescriptions = append(prescriptions, &model.Prescription{
			ID:                uuid.New(),
			ProgrammingPlanID: planID,
			Region:            c.Region,
			SampleMatrix:      c.SampleMatrix,
			SampleStage:       c.SampleStage,
			SampleCount:       c.SampleCount,
		})
	}
	if err := p.prescriptionStore.Insert(ctx, prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (p *planImpl) UpdatePrescription(ctx context.Context, planID uuid.UUID, id uuid.UUID, update *core.PrescriptionUpdate) (*model.Prescription, error) {
	prescription, err := p.findInPlan(ctx, planID, id)
	if err != nil {
		return nil, err
	}
	prescription.SampleCount = update.SampleCount
	if err := p.prescriptionStore.Update(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (p *planImpl) DeletePrescription(ctx context.Context, planID uuid.UUID, id uuid.UUID) error {
	if _, err := p.findInPlan(ctx, planID, id); err != nil {
		return err
	}
	return p.prescriptionStore.DeleteOne(ctx, id)
}

func (p *planImpl) findInPlan(ctx context.Context, planID uuid.UUID, id uuid.UUID) (*model.Prescription, error) {
	prescription, err := p.prescriptionStore.FindUnique(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil || prescription.ProgrammingPlanID != planID {
		return nil, code.RecordNotFound
	}
	return prescription, nil
}

package sample

import (
	"context"
	"fmt"
	"time"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	core "github.com/agrigouv/pspc/pkg/core/sample"
	"github.com/agrigouv/pspc/pkg/middleware/auth"
	"github.com/agrigouv/pspc/pkg/middleware/logger"
	"github.com/agrigouv/pspc/pkg/repo"
	lStore "github.com/agrigouv/pspc/pkg/repo/laboratory"
	"github.com/agrigouv/pspc/pkg/repo/model"
	sStore "github.com/agrigouv/pspc/pkg/repo/sample"
)

type sampleImpl struct {
	sampleStore repo.SampleRepo
	labStore    repo.LaboratoryRepo
	docStore    repo.DocumentRepo
}

func NewSample() core.Service {
	return New(sStore.NewSampleRepo(), lStore.NewLaboratoryRepo(), lStore.NewDocumentRepo())
}

// New wires explicit stores; tests inject fakes here.
func New(sampleStore repo.SampleRepo, labStore repo.LaboratoryRepo, docStore repo.DocumentRepo) core.Service {
	return &sampleImpl{
		sampleStore: sampleStore,
		labStore:    labStore,
		docStore:    docStore,
	}
}

func (s *sampleImpl) CreateSample(ctx context.Context, req *core.CreateSampleReq) (*model.Sample, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	if user.Region == nil {
		return nil, code.RegionMissing
	}

	serial, err := s.sampleStore.GetSerial(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	geolocation := req.Geolocation
	sampledAt := req.SampledAt
	sample := &model.Sample{
		ID:                uuid.New(),
		Reference:         buildReference(*user.Region, req.Department, req.LegalContext, serial, now),
		Status:            model.StatusDraftInfos,
		Department:        req.Department,
		LegalContext:      req.LegalContext,
		Geolocation:       &geolocation,
		SampledAt:         &sampledAt,
		ResytalID:         req.ResytalID,
		ProgrammingPlanID: req.ProgrammingPlanID,
		Parcel:            req.Parcel,
		CommentCreation:   req.CommentCreation,
		CreatedBy:         user.ID,
		CreatedAt:         now,
		LastUpdatedAt:     now,
	}

	if err := s.sampleStore.Insert(ctx, sample); err != nil {
		return nil, err
	}
	logger.Infof(ctx, "created sample %s reference %s", sample.ID, sample.Reference)
	return sample, nil
}

// buildReference composes the immutable human-readable code:
// {regionShortName}-{department}-{YY}-{0-padded serial}-{legalContext}.
func buildReference(region common.Region, department, legalContext string, serial int64, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%04d-%s",
		region.ShortName(), department, at.Format("06"), serial, legalContext)
}

func (s *sampleImpl) GetSample(ctx context.Context, id uuid.UUID) (*model.Sample, error) {
	sample, err := s.findScoped(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.sampleStore.FindItems(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		sample.Items = append(sample.Items, *item)
	}
	return sample, nil
}

// findScoped fetches a sample and applies the caller's region gate. An
// out-of-region sample reads as not found, never as forbidden.
func (s *sampleImpl) findScoped(ctx context.Context, id uuid.UUID) (*model.Sample, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	sample, err := s.sampleStore.FindUnique(ctx, id)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, code.RecordNotFound
	}
	if user.Region != nil && !user.Region.CoversDepartment(sample.Department) {
		return nil, code.RecordNotFound
	}
	return sample, nil
}

func (s *sampleImpl) FindSamples(ctx context.Context, req *core.FindSamplesReq) ([]*model.Sample, error) {
	opts, err := s.scopedOptions(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.sampleStore.FindMany(ctx, opts)
}

func (s *sampleImpl) CountSamples(ctx context.Context, req *core.FindSamplesReq) (int64, error) {
	opts, err := s.scopedOptions(ctx, req)
	if err != nil {
		return 0, err
	}
	return s.sampleStore.Count(ctx, opts)
}

// scopedOptions forces the caller's own region onto the filter for regional
// users; administrators and national roles may filter any region.
func (s *sampleImpl) scopedOptions(ctx context.Context, req *core.FindSamplesReq) (*repo.FindSampleOptions, error) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		return nil, code.UnLogin
	}
	opts := &repo.FindSampleOptions{
		Region:     req.Region,
		Status:     req.Status,
		Department: req.Department,
		Page:       req.Page,
		PerPage:    req.PerPage,
	}
	if req.ProgrammingPlanID != nil {
		planID, err := uuid.FromString(*req.ProgrammingPlanID)
		if err != nil {
			return nil, code.ParamErr.WithErr(err)
		}
		opts.ProgrammingPlanID = &planID
	}
	if user.Region != nil {
		opts.Region = user.Region
	}
	return opts, nil
}

func (s *sampleImpl) UpdateSample(ctx context.Context, id uuid.UUID, patch *model.Sample) (*model.Sample, error) {
	sample, err := s.findScoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if sample.Status.IsTerminal() {
		return nil, code.Forbidden
	}

	sample.Merge(patch)

	if patch.Status != "" && patch.Status != sample.Status {
		if !sample.Status.CanTransition(patch.Status) {
			return nil, code.Forbidden
		}
		if patch.Status == model.StatusSent {
			if err := s.checkSendable(ctx, sample); err != nil {
				return nil, err
			}
			now := time.Now()
			sample.SentAt = &now
		}
		sample.Status = patch.Status
	}

	sample.LastUpdatedAt = time.Now()
	if err := s.sampleStore.Update(ctx, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

// checkSendable verifies the laboratory resolves and at least one item
// carries a resolvable support document before the terminal transition.
// Nothing is advanced on failure.
func (s *sampleImpl) checkSendable(ctx context.Context, sample *model.Sample) error {
	if sample.LaboratoryID == nil {
		return code.Forbidden.WithErr(fmt.Errorf("sample %s has no laboratory", sample.ID))
	}
	lab, err := s.labStore.FindUnique(ctx, *sample.LaboratoryID)
	if err != nil {
		return err
	}
	if lab == nil {
		return code.Forbidden.WithErr(fmt.Errorf("laboratory %s not found", *sample.LaboratoryID))
	}

	items, err := s.sampleStore.FindItems(ctx, sample.ID)
	if err != nil {
		return err
	}
	documents := 0
	for _, item := range items {
		if item.DocumentID == nil {
			continue
		}
		doc, err := s.docStore.FindUnique(ctx, *item.DocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return code.Forbidden.WithErr(fmt.Errorf("document %s not found", *item.DocumentID))
		}
		documents++
	}
	if documents == 0 {
		return code.Forbidden.WithErr(fmt.Errorf("sample %s has no support document", sample.ID))
	}
	return nil
}

func (s *sampleImpl) UpdateSampleItems(ctx context.Context, id uuid.UUID, items []*model.SampleItem) ([]*model.SampleItem, error) {
	sample, err := s.findScoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if sample.Status.IsTerminal() {
		return nil, code.Forbidden
	}

	for _, item := range items {
		item.SampleID = id
	}
	if err := s.sampleStore.ReplaceItems(ctx, id, items); err != nil {
		return nil, err
	}

	sample.LastUpdatedAt = time.Now()
	if err := s.sampleStore.Update(ctx, sample); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *sampleImpl) DeleteSample(ctx context.Context, id uuid.UUID) error {
	sample, err := s.findScoped(ctx, id)
	if err != nil {
		return err
	}
	if !sample.Status.IsDraft() {
		return code.Forbidden
	}
	return s.sampleStore.DeleteOne(ctx, id)
}

package sample

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	core "github.com/agrigouv/pspc/pkg/core/sample"
	"github.com/agrigouv/pspc/pkg/middleware/auth"
	"github.com/agrigouv/pspc/pkg/repo"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSampleRepo struct {
	samples map[uuid.UUID]*model.Sample
	items   map[uuid.UUID][]*model.SampleItem
	serial  int64
}

func newFakeSampleRepo() *fakeSampleRepo {
	return &fakeSampleRepo{
		samples: map[uuid.UUID]*model.Sample{},
		items:   map[uuid.UUID][]*model.SampleItem{},
	}
}

func (f *fakeSampleRepo) FindUnique(_ context.Context, id uuid.UUID) (*model.Sample, error) {
	sample, ok := f.samples[id]
	if !ok {
		return nil, nil
	}
	clone := *sample
	return &clone, nil
}

func (f *fakeSampleRepo) matches(sample *model.Sample, opts *repo.FindSampleOptions) bool {
	if opts.Region != nil && !opts.Region.CoversDepartment(sample.Department) {
		return false
	}
	if opts.Status != nil && sample.Status != *opts.Status {
		return false
	}
	if opts.Department != nil && sample.Department != *opts.Department {
		return false
	}
	if opts.ProgrammingPlanID != nil {
		if sample.ProgrammingPlanID == nil || *sample.ProgrammingPlanID != *opts.ProgrammingPlanID {
			return false
		}
	}
	if opts.CreatedBy != nil && sample.CreatedBy != *opts.CreatedBy {
		return false
	}
	return true
}

func (f *fakeSampleRepo) FindMany(_ context.Context, opts *repo.FindSampleOptions) ([]*model.Sample, error) {
	var out []*model.Sample
	for _, sample := range f.samples {
		if f.matches(sample, opts) {
			clone := *sample
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeSampleRepo) Count(ctx context.Context, opts *repo.FindSampleOptions) (int64, error) {
	found, err := f.FindMany(ctx, opts)
	return int64(len(found)), err
}

func (f *fakeSampleRepo) Insert(_ context.Context, sample *model.Sample) error {
	if _, exists := f.samples[sample.ID]; exists {
		return code.CreateDataErr.WithErr(fmt.Errorf("duplicate id %s", sample.ID))
	}
	clone := *sample
	f.samples[sample.ID] = &clone
	return nil
}

func (f *fakeSampleRepo) Update(_ context.Context, sample *model.Sample) error {
	if _, exists := f.samples[sample.ID]; !exists {
		return code.UpdateDataErr.WithErr(fmt.Errorf("unknown id %s", sample.ID))
	}
	clone := *sample
	f.samples[sample.ID] = &clone
	return nil
}

func (f *fakeSampleRepo) DeleteOne(_ context.Context, id uuid.UUID) error {
	delete(f.samples, id)
	delete(f.items, id)
	return nil
}

func (f *fakeSampleRepo) GetSerial(_ context.Context) (int64, error) {
	f.serial++
	return f.serial, nil
}

func (f *fakeSampleRepo) FindItems(_ context.Context, sampleID uuid.UUID) ([]*model.SampleItem, error) {
	return f.items[sampleID], nil
}

func (f *fakeSampleRepo) ReplaceItems(_ context.Context, sampleID uuid.UUID, items []*model.SampleItem) error {
	f.items[sampleID] = items
	return nil
}

type fakeLaboratoryRepo struct {
	labs map[uuid.UUID]*model.Laboratory
}

func (f *fakeLaboratoryRepo) FindUnique(_ context.Context, id uuid.UUID) (*model.Laboratory, error) {
	return f.labs[id], nil
}

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*model.Document
}

func (f *fakeDocumentRepo) FindUnique(_ context.Context, id uuid.UUID) (*model.Document, error) {
	return f.docs[id], nil
}

type fixture struct {
	service core.Service
	samples *fakeSampleRepo
	labs    *fakeLaboratoryRepo
	docs    *fakeDocumentRepo
}

func newFixture() *fixture {
	samples := newFakeSampleRepo()
	labs := &fakeLaboratoryRepo{labs: map[uuid.UUID]*model.Laboratory{}}
	docs := &fakeDocumentRepo{docs: map[uuid.UUID]*model.Document{}}
	return &fixture{
		service: New(samples, labs, docs),
		samples: samples,
		labs:    labs,
		docs:    docs,
	}
}

func ctxWithUser(user *model.User) *gin.Context {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	if user != nil {
		ctx.Set(auth.USERKEY, user)
	}
	return ctx
}

func regionPtr(r common.Region) *common.Region { return &r }

func samplerIn(region common.Region) *model.User {
	return &model.User{
		ID:     uuid.New(),
		Email:  "sampler@agriculture.gouv.fr",
		Role:   common.Sampler,
		Region: regionPtr(region),
	}
}

func admin() *model.User {
	return &model.User{
		ID:    uuid.New(),
		Email: "admin@agriculture.gouv.fr",
		Role:  common.Administrator,
	}
}

func strPtr(s string) *string { return &s }

func (f *fixture) seed(t *testing.T, sample *model.Sample) *model.Sample {
	t.Helper()
	if sample.ID == uuid.Nil {
		sample.ID = uuid.New()
	}
	require.NoError(t, f.samples.Insert(context.Background(), sample))
	return sample
}

func TestCreateSampleBuildsReference(t *testing.T) {
	f := newFixture()
	f.samples.serial = 7 // next draw is 8
	user := samplerIn(common.IleDeFrance)
	ctx := ctxWithUser(user)

	created, err := f.service.CreateSample(ctx, &core.CreateSampleReq{
		Department:   "75",
		LegalContext: "B",
		Geolocation:  model.Geolocation{X: 48.85, Y: 2.35},
		SampledAt:    time.Now(),
	})
	require.NoError(t, err)

	year := time.Now().Format("06")
	assert.Equal(t, fmt.Sprintf("IDF-75-%s-0008-B", year), created.Reference)
	assert.Equal(t, model.StatusDraftInfos, created.Status)
	assert.Equal(t, user.ID, created.CreatedBy)
	assert.NotEqual(t, uuid.Nil, created.ID)

	stored, err := f.samples.FindUnique(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, created.Reference, stored.Reference)
}

func TestCreateSampleReferencesAreUnique(t *testing.T) {
	f := newFixture()
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		created, err := f.service.CreateSample(ctx, &core.CreateSampleReq{
			Department:   "57",
			LegalContext: "A",
			Geolocation:  model.Geolocation{X: 49.11, Y: 6.17},
			SampledAt:    time.Now(),
		})
		require.NoError(t, err)
		assert.False(t, seen[created.Reference], "duplicate reference %s", created.Reference)
		seen[created.Reference] = true
	}
}

func TestCreateSampleGuards(t *testing.T) {
	f := newFixture()
	req := &core.CreateSampleReq{
		Department:   "57",
		LegalContext: "A",
		Geolocation:  model.Geolocation{X: 49.11, Y: 6.17},
		SampledAt:    time.Now(),
	}

	_, err := f.service.CreateSample(ctxWithUser(nil), req)
	assert.ErrorIs(t, err, code.UnLogin)

	_, err = f.service.CreateSample(ctxWithUser(admin()), req)
	assert.ErrorIs(t, err, code.RegionMissing)
}

func TestGetSampleRegionScope(t *testing.T) {
	f := newFixture()
	sample := f.seed(t, &model.Sample{
		Reference:  "BRE-29-26-0001-A",
		Status:     model.StatusDraftInfos,
		Department: "29",
		CreatedBy:  uuid.New(),
	})

	// a Grand Est user must not learn the sample exists
	_, err := f.service.GetSample(ctxWithUser(samplerIn(common.GrandEst)), sample.ID)
	assert.ErrorIs(t, err, code.RecordNotFound)

	// the covering region reads it fine
	got, err := f.service.GetSample(ctxWithUser(samplerIn(common.Bretagne)), sample.ID)
	require.NoError(t, err)
	assert.Equal(t, sample.Reference, got.Reference)

	// national users have no region gate
	got, err = f.service.GetSample(ctxWithUser(admin()), sample.ID)
	require.NoError(t, err)
	assert.Equal(t, sample.ID, got.ID)
}

func TestGetSampleLoadsItems(t *testing.T) {
	f := newFixture()
	sample := f.seed(t, &model.Sample{
		Reference:  "GES-57-26-0001-A",
		Status:     model.StatusDraftItems,
		Department: "57",
		CreatedBy:  uuid.New(),
	})
	f.samples.items[sample.ID] = []*model.SampleItem{
		{SampleID: sample.ID, ItemNumber: 1, SealID: strPtr("seal-1")},
		{SampleID: sample.ID, ItemNumber: 2, SealID: strPtr("seal-2")},
	}

	got, err := f.service.GetSample(ctxWithUser(samplerIn(common.GrandEst)), sample.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 1, got.Items[0].ItemNumber)
	assert.Equal(t, 2, got.Items[1].ItemNumber)
}

func TestFindSamplesForcesUserRegion(t *testing.T) {
	f := newFixture()
	for _, dept := range []string{"57", "67", "29", "75"} {
		f.seed(t, &model.Sample{
			Reference:  "X-" + dept,
			Status:     model.StatusDraftInfos,
			Department: dept,
			CreatedBy:  uuid.New(),
		})
	}

	// no filters: only Grand Est departments come back
	found, err := f.service.FindSamples(ctxWithUser(samplerIn(common.GrandEst)), &core.FindSamplesReq{})
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, sample := range found {
		assert.Contains(t, common.GrandEst.Departments(), sample.Department)
	}

	// an explicit foreign region filter is overridden by the user's own
	found, err = f.service.FindSamples(ctxWithUser(samplerIn(common.GrandEst)), &core.FindSamplesReq{
		Region: regionPtr(common.Bretagne),
	})
	require.NoError(t, err)
	require.Len(t, found, 2)

	// a national user may filter any region
	found, err = f.service.FindSamples(ctxWithUser(admin()), &core.FindSamplesReq{
		Region: regionPtr(common.Bretagne),
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "29", found[0].Department)

	count, err := f.service.CountSamples(ctxWithUser(samplerIn(common.GrandEst)), &core.FindSamplesReq{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestFindSamplesPlanFilter(t *testing.T) {
	f := newFixture()
	planID := uuid.New()
	f.seed(t, &model.Sample{
		Reference:         "GES-57-26-0010-A",
		Status:            model.StatusDraftInfos,
		Department:        "57",
		ProgrammingPlanID: &planID,
		CreatedBy:         uuid.New(),
	})
	f.seed(t, &model.Sample{
		Reference:  "GES-67-26-0011-A",
		Status:     model.StatusDraftInfos,
		Department: "67",
		CreatedBy:  uuid.New(),
	})
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	planStr := planID.String()
	found, err := f.service.FindSamples(ctx, &core.FindSamplesReq{ProgrammingPlanID: &planStr})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.NotNil(t, found[0].ProgrammingPlanID)
	assert.Equal(t, planID, *found[0].ProgrammingPlanID)

	count, err := f.service.CountSamples(ctx, &core.FindSamplesReq{ProgrammingPlanID: &planStr})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	bad := "not-a-uuid"
	_, err = f.service.FindSamples(ctx, &core.FindSamplesReq{ProgrammingPlanID: &bad})
	assert.ErrorIs(t, err, code.ParamErr)
}

func TestUpdateSamplePartialPatch(t *testing.T) {
	f := newFixture()
	sample := f.seed(t, &model.Sample{
		Reference:    "GES-57-26-0001-A",
		Status:       model.StatusDraftMatrix,
		Department:   "57",
		LegalContext: "A",
		Matrix:       strPtr("wheat"),
		Parcel:       strPtr("parcel-12"),
		CreatedBy:    uuid.New(),
	})
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	updated, err := f.service.UpdateSample(ctx, sample.ID, &model.Sample{
		Stage: strPtr("harvest"),
	})
	require.NoError(t, err)
	assert.Equal(t, "harvest", *updated.Stage)
	assert.Equal(t, "wheat", *updated.Matrix)
	assert.Equal(t, "parcel-12", *updated.Parcel)
	assert.Equal(t, model.StatusDraftMatrix, updated.Status)
	assert.False(t, updated.LastUpdatedAt.IsZero())

	stored, err := f.samples.FindUnique(ctx, sample.ID)
	require.NoError(t, err)
	assert.Equal(t, "harvest", *stored.Stage)
	assert.Equal(t, "wheat", *stored.Matrix)
}

func TestUpdateSampleStatusAdvance(t *testing.T) {
	f := newFixture()
	sample := f.seed(t, &model.Sample{
		Reference:  "GES-57-26-0002-A",
		Status:     model.StatusDraftInfos,
		Department: "57",
		CreatedBy:  uuid.New(),
	})
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	updated, err := f.service.UpdateSample(ctx, sample.ID, &model.Sample{
		Status: model.StatusDraftMatrix,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraftMatrix, updated.Status)

	// skipping a step is refused
	_, err = f.service.UpdateSample(ctx, sample.ID, &model.Sample{
		Status: model.StatusSubmitted,
	})
	assert.ErrorIs(t, err, code.Forbidden)

	// so is walking backward
	_, err = f.service.UpdateSample(ctx, sample.ID, &model.Sample{
		Status: model.StatusDraftInfos,
	})
	assert.ErrorIs(t, err, code.Forbidden)

	stored, err := f.samples.FindUnique(ctx, sample.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraftMatrix, stored.Status)
}

func TestUpdateSampleSentIsFrozen(t *testing.T) {
	f := newFixture()
	sentAt := time.Now().Add(-time.Hour)
	sample := f.seed(t, &model.Sample{
		Reference:  "GES-57-26-0003-A",
		Status:     model.StatusSent,
		Department: "57",
		Matrix:     strPtr("wheat"),
		SentAt:     &sentAt,
		CreatedBy:  uuid.New(),
	})
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	_, err := f.service.UpdateSample(ctx, sample.ID, &model.Sample{
		Matrix: strPtr("barley"),
	})
	assert.ErrorIs(t, err, code.Forbidden)

	stored, err := f.samples.FindUnique(ctx, sample.ID)
	require.NoError(t, err)
	assert.Equal(t, "wheat", *stored.Matrix)
	assert.Equal(t, model.StatusSent, stored.Status)
}

func TestUpdateSampleSendGate(t *testing.T) {
	f := newFixture()
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	labID := uuid.New()
	docID := uuid.New()

	sample := f.seed(t, &model.Sample{
		Reference:  "GES-57-26-0004-A",
		Status:     model.StatusSubmitted,
		Department: "57",
		CreatedBy:  uuid.New(),
	})
	f.samples.items[sample.ID] = []*model.SampleItem{
		{SampleID: sample.ID, ItemNumber: 1, DocumentID: &docID},
	}

	// no laboratory: refused, nothing advanced
	_, err := f.service.UpdateSample(ctx, sample.ID, &model.Sample{Status: model.StatusSent})
	assert.ErrorIs(t, err, code.Forbidden)

	// laboratory set but unknown: refused
	_, err = f.service.UpdateSample(ctx, sample.ID, &model.Sample{
		LaboratoryID: &labID,
		Status:       model.StatusSent,
	})
	assert.ErrorIs(t, err, code.Forbidden)

	f.labs.labs[labID] = &model.Laboratory{ID: labID, Name: "LABOCEA", Email: "labocea@example.fr"}

	// referenced document missing: refused
	_, err = f.service.UpdateSample(ctx, sample.ID, &model.Sample{
		LaboratoryID: &labID,
		Status:       model.StatusSent,
	})
	assert.ErrorIs(t, err, code.Forbidden)

	stored, err := f.samples.FindUnique(ctx, sample.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, stored.Status)
	assert.Nil(t, stored.SentAt)

	f.docs.docs[docID] = &model.Document{ID: docID, Filename: "seal.pdf"}

	updated, err := f.service.UpdateSample(ctx, sample.ID, &model.Sample{
		LaboratoryID: &labID,
		Status:       model.StatusSent,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, updated.Status)
	require.NotNil(t, updated.SentAt)
}

func TestUpdateSampleSendRequiresSupportDocument(t *testing.T) {
	f := newFixture()
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	labID := uuid.New()
	f.labs.labs[labID] = &model.Laboratory{ID: labID, Name: "LABOCEA", Email: "labocea@example.fr"}

	sample := f.seed(t, &model.Sample{
		Reference:    "GES-57-26-0009-A",
		Status:       model.StatusSubmitted,
		Department:   "57",
		LaboratoryID: &labID,
		CreatedBy:    uuid.New(),
	})

	// no items at all: refused even with a resolvable laboratory
	_, err := f.service.UpdateSample(ctx, sample.ID, &model.Sample{Status: model.StatusSent})
	assert.ErrorIs(t, err, code.Forbidden)

	// items without any support document are not enough either
	f.samples.items[sample.ID] = []*model.SampleItem{
		{SampleID: sample.ID, ItemNumber: 1, SealID: strPtr("seal-1")},
	}
	_, err = f.service.UpdateSample(ctx, sample.ID, &model.Sample{Status: model.StatusSent})
	assert.ErrorIs(t, err, code.Forbidden)

	stored, err := f.samples.FindUnique(ctx, sample.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, stored.Status)
	assert.Nil(t, stored.SentAt)

	docID := uuid.New()
	f.docs.docs[docID] = &model.Document{ID: docID, Filename: "seal.pdf"}
	f.samples.items[sample.ID][0].DocumentID = &docID

	updated, err := f.service.UpdateSample(ctx, sample.ID, &model.Sample{Status: model.StatusSent})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, updated.Status)
	require.NotNil(t, updated.SentAt)
}

func TestUpdateSampleItemsReplacesWholeSet(t *testing.T) {
	f := newFixture()
	sample := f.seed(t, &model.Sample{
		Reference:  "GES-57-26-0005-A",
		Status:     model.StatusDraftItems,
		Department: "57",
		CreatedBy:  uuid.New(),
	})
	f.samples.items[sample.ID] = []*model.SampleItem{
		{SampleID: sample.ID, ItemNumber: 1, SealID: strPtr("old-1")},
		{SampleID: sample.ID, ItemNumber: 2, SealID: strPtr("old-2")},
		{SampleID: sample.ID, ItemNumber: 3, SealID: strPtr("old-3")},
	}
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	replaced, err := f.service.UpdateSampleItems(ctx, sample.ID, []*model.SampleItem{
		{ItemNumber: 1, SealID: strPtr("new-1")},
		{ItemNumber: 2, SealID: strPtr("new-2")},
	})
	require.NoError(t, err)
	require.Len(t, replaced, 2)
	for _, item := range replaced {
		assert.Equal(t, sample.ID, item.SampleID)
	}

	items, err := f.samples.FindItems(ctx, sample.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new-1", *items[0].SealID)
	assert.Equal(t, "new-2", *items[1].SealID)
}

func TestUpdateSampleItemsRefusedWhenSent(t *testing.T) {
	f := newFixture()
	sample := f.seed(t, &model.Sample{
		Reference:  "GES-57-26-0006-A",
		Status:     model.StatusSent,
		Department: "57",
		CreatedBy:  uuid.New(),
	})

	_, err := f.service.UpdateSampleItems(ctxWithUser(samplerIn(common.GrandEst)), sample.ID, []*model.SampleItem{
		{ItemNumber: 1},
	})
	assert.ErrorIs(t, err, code.Forbidden)
}

func TestDeleteSampleOnlyDrafts(t *testing.T) {
	f := newFixture()
	ctx := ctxWithUser(samplerIn(common.GrandEst))

	draft := f.seed(t, &model.Sample{
		Reference:  "GES-57-26-0007-A",
		Status:     model.StatusDraftItems,
		Department: "57",
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, f.service.DeleteSample(ctx, draft.ID))
	stored, err := f.samples.FindUnique(ctx, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	for _, status := range []model.SampleStatus{model.StatusSubmitted, model.StatusSent} {
		sample := f.seed(t, &model.Sample{
			Reference:  "GES-57-26-0008-" + string(status[0]),
			Status:     status,
			Department: "57",
			CreatedBy:  uuid.New(),
		})
		err := f.service.DeleteSample(ctx, sample.ID)
		assert.ErrorIs(t, err, code.Forbidden, "deleting %s sample must be refused", status)
		stored, err := f.samples.FindUnique(ctx, sample.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored)
	}
}

func TestDeleteSampleUnknown(t *testing.T) {
	f := newFixture()
	err := f.service.DeleteSample(ctxWithUser(samplerIn(common.GrandEst)), uuid.New())
	assert.ErrorIs(t, err, code.RecordNotFound)
}

package sample

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

const serialSequence = "samples_serial"

type sampleImpl struct {
	*db.Datastore
}

func NewSampleRepo() repo.SampleRepo {
	return &sampleImpl{Datastore: db.DB()}
}

func (s *sampleImpl) FindUnique(ctx context.Context, id uuid.UUID) (*model.Sample, error) {
	sample := &model.Sample{}
	err := s.DBWithContext(ctx).Where("id = ?", id).First(sample).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return sample, nil
}

func (s *sampleImpl) FindMany(ctx context.Context, opts *repo.FindSampleOptions) ([]*model.Sample, error) {
	var samples []*model.Sample
	q := applyFilters(s.DBWithContext(ctx).Model(&model.Sample{}), opts)
	if opts != nil && opts.PerPage > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * opts.PerPage).Limit(opts.PerPage)
	}
	if err := q.Order("created_at DESC").Find(&samples).Error; err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return samples, nil
}

func (s *sampleImpl) Count(ctx context.Context, opts *repo.FindSampleOptions) (int64, error) {
	var count int64
	q := applyFilters(s.DBWithContext(ctx).Model(&model.Sample{}), opts)
	if err := q.Count(&count).Error; err != nil {
		return 0, code.QueryDataErr.WithErr(err)
	}
	return count, nil
}

func applyFilters(q *gorm.DB, opts *repo.FindSampleOptions) *gorm.DB {
	if opts == nil {
		return q
	}
	if opts.Status != nil {
		q = q.Where("status = ?", *opts.Status)
	}
	if opts.Department != nil {
		q = q.Where("department = ?", *opts.Department)
	}
	if opts.ProgrammingPlanID != nil {
		q = q.Where("programming_plan_id = ?", *opts.ProgrammingPlanID)
	}
	if opts.CreatedBy != nil {
		q = q.Where("created_by = ?", *opts.CreatedBy)
	}
	if opts.Region != nil {
		q = q.Where("department IN ?", opts.Region.Departments())
	}
	return q
}

func (s *sampleImpl) Insert(ctx context.Context, sample *model.Sample) error {
	if err := s.DBWithContext(ctx).Create(sample).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

// Update writes the supplied record as a sparse patch: gorm skips zero-value
// fields, so nil optional fields never reach the SET clause. Immutable
// columns are omitted outright.
func (s *sampleImpl) Update(ctx context.Context, sample *model.Sample) error {
	err := s.DBWithContext(ctx).
		Model(&model.Sample{}).
		Where("id = ?", sample.ID).
		Omit("id", "reference", "created_by", "created_at").
		Updates(sample).Error
	if err != nil {
		return code.UpdateDataErr.WithErr(err)
	}
	return nil
}

func (s *sampleImpl) DeleteOne(ctx context.Context, id uuid.UUID) error {
	// Items go with the sample through the FK cascade.
	if err := s.DBWithContext(ctx).Where("id = ?", id).Delete(&model.Sample{}).Error; err != nil {
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

// GetSerial relies on the postgres sequence so concurrent draws can never
// collide.
func (s *sampleImpl) GetSerial(ctx context.Context) (int64, error) {
	var serial int64
	err := s.DBWithContext(ctx).Raw("SELECT nextval(?)", serialSequence).Scan(&serial).Error
	if err != nil {
		return 0, code.QueryDataErr.WithErr(err)
	}
	return serial, nil
}

func (s *sampleImpl) FindItems(ctx context.Context, sampleID uuid.UUID) ([]*model.SampleItem, error) {
	var items []*model.SampleItem
	err := s.DBWithContext(ctx).
		Where("sample_id = ?", sampleID).
		Order("item_number ASC").
		Find(&items).Error
	if err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return items, nil
}

// ReplaceItems deletes then reinserts the item set inside one transaction so
// no partial set is ever visible.
func (s *sampleImpl) ReplaceItems(ctx context.Context, sampleID uuid.UUID, items []*model.SampleItem) error {
	err := s.DBWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sample_id = ?", sampleID).Delete(&model.SampleItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return code.UpdateDataErr.WithErr(err)
	}
	return nil
}

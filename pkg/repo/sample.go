package repo

import (
	"context"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

// FindSampleOptions are equality filters; nil fields are ignored. Region
// expands to "department in the region's department list".
type FindSampleOptions struct {
	Region            *common.Region
	Status            *model.SampleStatus
	Department        *string
	ProgrammingPlanID *uuid.UUID
	CreatedBy         *uuid.UUID
	Page              int
	PerPage           int
}

type SampleRepo interface {
	// FindUnique returns (nil, nil) when the sample does not exist.
	FindUnique(ctx context.Context, id uuid.UUID) (*model.Sample, error)
	FindMany(ctx context.Context, opts *FindSampleOptions) ([]*model.Sample, error)
	Count(ctx context.Context, opts *FindSampleOptions) (int64, error)
	Insert(ctx context.Context, sample *model.Sample) error
	// Update persists the supplied record; absent optional fields (nil
	// pointers) are never written.
	Update(ctx context.Context, sample *model.Sample) error
	DeleteOne(ctx context.Context, id uuid.UUID) error
	// GetSerial atomically draws the next value of the installation-wide
	// reference counter.
	GetSerial(ctx context.Context) (int64, error)
	FindItems(ctx context.Context, sampleID uuid.UUID) ([]*model.SampleItem, error)
	// ReplaceItems swaps the whole item set in one transaction.
	ReplaceItems(ctx context.Context, sampleID uuid.UUID, items []*model.SampleItem) error
}

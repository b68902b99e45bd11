package sample

import (
	"context"
	"time"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

// CreateSampleReq carries the step-1 payload. Department, legal context and
// geolocation are needed up front to build the reference code.
type CreateSampleReq struct {
	Department        string            `json:"department" binding:"required"`
	LegalContext      string            `json:"legal_context" binding:"required"`
	Geolocation       model.Geolocation `json:"geolocation" binding:"required"`
	SampledAt         time.Time         `json:"sampled_at" binding:"required"`
	ResytalID         *string           `json:"resytal_id,omitempty"`
	ProgrammingPlanID *uuid.UUID        `json:"programming_plan_id,omitempty"`
	Parcel            *string           `json:"parcel,omitempty"`
	CommentCreation   *string           `json:"comment_creation,omitempty"`
}

// FindSamplesReq binds list/count query filters. ProgrammingPlanID stays a
// string here because gin's query binding cannot decode into a uuid array
// type; the service parses it.
type FindSamplesReq struct {
	Region            *common.Region      `form:"region"`
	Status            *model.SampleStatus `form:"status"`
	Department        *string             `form:"department"`
	ProgrammingPlanID *string             `form:"programming_plan_id"`
	Page              int                 `form:"page,default=1"`
	PerPage           int                 `form:"per_page,default=20"`
}

type Service interface {
	CreateSample(ctx context.Context, req *CreateSampleReq) (*model.Sample, error)
	GetSample(ctx context.Context, id uuid.UUID) (*model.Sample, error)
	FindSamples(ctx context.Context, req *FindSamplesReq) ([]*model.Sample, error)
	CountSamples(ctx context.Context, req *FindSamplesReq) (int64, error)
	// UpdateSample merges the sparse patch onto the stored record: nil
	// fields are "not supplied, leave the stored value alone". A non-empty
	// patch status must be the next state on the forward path.
	UpdateSample(ctx context.Context, id uuid.UUID, patch *model.Sample) (*model.Sample, error)
	UpdateSampleItems(ctx context.Context, id uuid.UUID, items []*model.SampleItem) ([]*model.SampleItem, error)
	DeleteSample(ctx context.Context, id uuid.UUID) error
}

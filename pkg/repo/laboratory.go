package repo

import (
	"context"

	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

type LaboratoryRepo interface {
	FindUnique(ctx context.Context, id uuid.UUID) (*model.Laboratory, error)
}

type DocumentRepo interface {
	FindUnique(ctx context.Context, id uuid.UUID) (*model.Document, error)
}

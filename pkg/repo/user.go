package repo

import (
	"context"

	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

type UserRepo interface {
	// FindUnique returns (nil, nil) when no user exists with this id.
	FindUnique(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

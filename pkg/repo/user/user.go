package user

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

type userImpl struct {
	*db.Datastore
}

func NewUserRepo() repo.UserRepo {
	return &userImpl{Datastore: db.DB()}
}

func (u *userImpl) FindUnique(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user := &model.User{}
	err := u.DBWithContext(ctx).Where("id = ?", id).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return user, nil
}

func (u *userImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := u.DBWithContext(ctx).Where("email = ?", email).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return user, nil
}

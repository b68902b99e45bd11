package account

import (
	"context"

	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

type SignInReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignInResp struct {
	UserID      uuid.UUID       `json:"user_id"`
	AccessToken string          `json:"access_token"`
	User        model.UserInfos `json:"user"`
}

type Service interface {
	SignIn(ctx context.Context, req *SignInReq) (*SignInResp, error)
	GetUserInfos(ctx context.Context, id uuid.UUID) (*model.UserInfos, error)
}

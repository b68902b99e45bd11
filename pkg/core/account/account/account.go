package account

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrigouv/pspc/internal/config"
	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	core "github.com/agrigouv/pspc/pkg/core/account"
	"github.com/agrigouv/pspc/pkg/middleware/auth"
	"github.com/agrigouv/pspc/pkg/middleware/logger"
	"github.com/agrigouv/pspc/pkg/repo"
	"github.com/agrigouv/pspc/pkg/repo/model"
	uStore "github.com/agrigouv/pspc/pkg/repo/user"
)

type accountImpl struct {
	userStore repo.UserRepo
}

func NewAccount() core.Service {
	return New(uStore.NewUserRepo())
}

func New(userStore repo.UserRepo) core.Service {
	return &accountImpl{userStore: userStore}
}

func (a *accountImpl) SignIn(ctx context.Context, req *core.SignInReq) (*core.SignInResp, error) {
	user, err := a.userStore.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, code.UserMissing
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, code.InvalidToken.WithErr(err)
	}

	token, err := issueToken(user)
	if err != nil {
		logger.Errorf(ctx, "issue token for user %s err: %+v", user.ID, err)
		return nil, code.InternalErr.WithErr(err)
	}

	return &core.SignInResp{
		UserID:      user.ID,
		AccessToken: token,
		User:        user.Infos(),
	}, nil
}

func issueToken(user *model.User) (string, error) {
	conf := config.Global().Auth
	now := time.Now()
	claims := &auth.Claims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(conf.TokenExpiryHrs) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(conf.Secret))
}

func (a *accountImpl) GetUserInfos(ctx context.Context, id uuid.UUID) (*model.UserInfos, error) {
	user, err := a.userStore.FindUnique(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, code.RecordNotFound
	}
	infos := user.Infos()
	return &infos, nil
}

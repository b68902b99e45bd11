package account

import (
	"github.com/gin-gonic/gin"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	core "github.com/agrigouv/pspc/pkg/core/account"
	impl "github.com/agrigouv/pspc/pkg/core/account/account"
	"github.com/agrigouv/pspc/pkg/middleware/auth"
	"github.com/agrigouv/pspc/pkg/middleware/logger"
)

type Handle struct {
	aService core.Service
}

func NewAccountHandle() *Handle {
	return &Handle{aService: impl.NewAccount()}
}

func NewHandleWith(s core.Service) *Handle {
	return &Handle{aService: s}
}

func (h *Handle) SignIn(ctx *gin.Context) {
	req := &core.SignInReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse SignIn param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ValidationErr, err.Error())
		return
	}
	resp, err := h.aService.SignIn(ctx, req)
	common.Reply(ctx, err, resp)
}

// GetUserInfos returns the public projection of a user. Non-administrators
// may only read themselves.
func (h *Handle) GetUserInfos(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("userId"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr, "invalid user id")
		return
	}
	caller := auth.GetCurrentUser(ctx)
	if caller == nil {
		common.ReplyErr(ctx, code.UnLogin)
		return
	}
	if caller.Role != common.Administrator && caller.ID != id {
		common.ReplyErr(ctx, code.Forbidden)
		return
	}
	resp, err := h.aService.GetUserInfos(ctx, id)
	common.Reply(ctx, err, resp)
}

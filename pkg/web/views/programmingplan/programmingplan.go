package programmingplan

import (
	"github.com/gin-gonic/gin"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	core "github.com/agrigouv/pspc/pkg/core/programmingplan"
	impl "github.com/agrigouv/pspc/pkg/core/programmingplan/programmingplan"
	"github.com/agrigouv/pspc/pkg/middleware/auth"
	"github.com/agrigouv/pspc/pkg/middleware/logger"
)

type Handle struct {
	pService core.Service
}

func NewProgrammingPlanHandle() *Handle {
	return &Handle{pService: impl.NewProgrammingPlan()}
}

func NewHandleWith(s core.Service) *Handle {
	return &Handle{pService: s}
}

func pathID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.FromString(ctx.Param(name))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handle) GetProgrammingPlan(ctx *gin.Context) {
	id, ok := pathID(ctx, "programmingPlanId")
	if !ok {
		return
	}
	resp, err := h.pService.GetProgrammingPlan(ctx, id)
	common.Reply(ctx, err, resp)
}

func (h *Handle) FindProgrammingPlans(ctx *gin.Context) {
	req := &core.FindPlansReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse FindProgrammingPlans param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.pService.FindProgrammingPlans(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) FindPrescriptions(ctx *gin.Context) {
	planID, ok := pathID(ctx, "programmingPlanId")
	if !ok {
		return
	}
	// Regional users only see their own region's prescriptions.
	region := requestRegion(ctx)
	resp, err := h.pService.FindPrescriptions(ctx, planID, region)
	common.Reply(ctx, err, resp)
}

func requestRegion(ctx *gin.Context) *common.Region {
	if user := auth.GetCurrentUser(ctx); user != nil && user.Region != nil {
		return user.Region
	}
	if raw := ctx.Query("region"); raw != "" {
		region := common.Region(raw)
		if region.Valid() {
			return &region
		}
	}
	return nil
}

func (h *Handle) CreatePrescriptions(ctx *gin.Context) {
	planID, ok := pathID(ctx, "programmingPlanId")
	if !ok {
		return
	}
	var toCreate []core.PrescriptionToCreate
	if err := ctx.ShouldBindJSON(&toCreate); err != nil {
		logger.Errorf(ctx, "parse CreatePrescriptions param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ValidationErr, err.Error())
		return
	}
	resp, err := h.pService.CreatePrescriptions(ctx, planID, toCreate)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyCreated(ctx, resp)
}

func (h *Handle) UpdatePrescription(ctx *gin.Context) {
	planID, ok := pathID(ctx, "programmingPlanId")
	if !ok {
		return
	}
	id, ok := pathID(ctx, "prescriptionId")
	if !ok {
		return
	}
	update := &core.PrescriptionUpdate{}
	if err := ctx.ShouldBindJSON(update); err != nil {
		logger.Errorf(ctx, "parse UpdatePrescription param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ValidationErr, err.Error())
		return
	}
	resp, err := h.pService.UpdatePrescription(ctx, planID, id, update)
	common.Reply(ctx, err, resp)
}

func (h *Handle) DeletePrescription(ctx *gin.Context) {
	planID, ok := pathID(ctx, "programmingPlanId")
	if !ok {
		return
	}
	id, ok := pathID(ctx, "prescriptionId")
	if !ok {
		return
	}
	if err := h.pService.DeletePrescription(ctx, planID, id); err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyNoContent(ctx)
}

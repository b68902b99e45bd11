package sample

import (
	"github.com/gin-gonic/gin"

	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	core "github.com/agrigouv/pspc/pkg/core/sample"
	impl "github.com/agrigouv/pspc/pkg/core/sample/sample"
	"github.com/agrigouv/pspc/pkg/middleware/logger"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

type Handle struct {
	sService core.Service
}

func NewSampleHandle() *Handle {
	return &Handle{sService: impl.NewSample()}
}

// NewHandleWith injects a service, for handler tests.
func NewHandleWith(s core.Service) *Handle {
	return &Handle{sService: s}
}

func sampleID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(ctx.Param("sampleId"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr, "invalid sample id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handle) FindSamples(ctx *gin.Context) {
	req := &core.FindSamplesReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse FindSamples param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.FindSamples(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) CountSamples(ctx *gin.Context) {
	req := &core.FindSamplesReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse CountSamples param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	count, err := h.sService.CountSamples(ctx, req)
	common.Reply(ctx, err, gin.H{"count": count})
}

func (h *Handle) GetSample(ctx *gin.Context) {
	id, ok := sampleID(ctx)
	if !ok {
		return
	}
	resp, err := h.sService.GetSample(ctx, id)
	common.Reply(ctx, err, resp)
}

func (h *Handle) CreateSample(ctx *gin.Context) {
	req := &core.CreateSampleReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse CreateSample param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ValidationErr, err.Error())
		return
	}
	resp, err := h.sService.CreateSample(ctx, req)
	if err != nil {
		logger.Errorf(ctx, "CreateSample err: %+v", err)
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyCreated(ctx, resp)
}

func (h *Handle) UpdateSample(ctx *gin.Context) {
	id, ok := sampleID(ctx)
	if !ok {
		return
	}
	patch := &model.Sample{}
	if err := ctx.ShouldBindJSON(patch); err != nil {
		logger.Errorf(ctx, "parse UpdateSample param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ValidationErr, err.Error())
		return
	}
	resp, err := h.sService.UpdateSample(ctx, id, patch)
	common.Reply(ctx, err, resp)
}

func (h *Handle) UpdateSampleItems(ctx *gin.Context) {
	id, ok := sampleID(ctx)
	if !ok {
		return
	}
	var items []*model.SampleItem
	if err := ctx.ShouldBindJSON(&items); err != nil {
		logger.Errorf(ctx, "parse UpdateSampleItems param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ValidationErr, err.Error())
		return
	}
	resp, err := h.sService.UpdateSampleItems(ctx, id, items)
	common.Reply(ctx, err, resp)
}

func (h *Handle) DeleteSample(ctx *gin.Context) {
	id, ok := sampleID(ctx)
	if !ok {
		return
	}
	if err := h.sService.DeleteSample(ctx, id); err != nil {
		logger.Errorf(ctx, "DeleteSample err: %+v", err)
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyNoContent(ctx)
}

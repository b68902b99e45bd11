package common

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrigouv/pspc/pkg/common/code"
)

type Error struct {
	Msg string `json:"msg"`
}

type Resp struct {
	Code  code.Code `json:"code"`
	Data  any       `json:"data,omitempty"`
	Error *Error    `json:"error,omitempty"`
}

// Reply writes the uniform response envelope, mapping the business code
// carried by err to the HTTP status.
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	if len(data) > 0 {
		ReplyOk(ctx, data[0])
		return
	}
	ReplyOk(ctx)
}

func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReplyCreated is ReplyOk with a 201, used by creation endpoints.
func ReplyCreated(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, &Resp{Code: code.Success, Data: data})
}

func ReplyNoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	c := code.From(err)
	msg := err.Error()
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	ctx.AbortWithStatusJSON(c.HTTPStatus(), &Resp{
		Code:  c,
		Error: &Error{Msg: msg},
	})
}

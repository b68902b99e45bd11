package code

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a business error code. Codes implement error so repositories and
// services can return them directly; the web boundary maps them to HTTP
// statuses.
type Code int

const (
	Success Code = 0

	ParamErr       Code = 40001
	ValidationErr  Code = 40002
	UnLogin        Code = 40101
	InvalidToken   Code = 40102
	UserMissing    Code = 40103
	RoleMissing    Code = 40301
	PermissionErr  Code = 40302
	Forbidden      Code = 40303
	RegionMissing  Code = 40304
	RecordNotFound Code = 40401
	InternalErr    Code = 50001
	QueryDataErr   Code = 50002
	CreateDataErr  Code = 50003
	UpdateDataErr  Code = 50004
	DeleteDataErr  Code = 50005
)

var messages = map[Code]string{
	Success:        "success",
	ParamErr:       "invalid request parameter",
	ValidationErr:  "payload validation failed",
	UnLogin:        "authentication missing",
	InvalidToken:   "invalid or expired token",
	UserMissing:    "user not found",
	RoleMissing:    "user role missing",
	PermissionErr:  "user permission missing",
	Forbidden:      "forbidden operation",
	RegionMissing:  "user has no region",
	RecordNotFound: "record not found",
	InternalErr:    "internal error",
	QueryDataErr:   "query data error",
	CreateDataErr:  "create data error",
	UpdateDataErr:  "update data error",
	DeleteDataErr:  "delete data error",
}

func (c Code) String() string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return fmt.Sprintf("unknown code %d", int(c))
}

func (c Code) Error() string {
	return c.String()
}

// HTTPStatus maps a business code to the HTTP status written at the boundary.
func (c Code) HTTPStatus() int {
	switch c {
	case Success:
		return http.StatusOK
	case ParamErr, ValidationErr:
		return http.StatusBadRequest
	case UnLogin, InvalidToken, UserMissing:
		return http.StatusUnauthorized
	case RoleMissing, PermissionErr, Forbidden, RegionMissing:
		return http.StatusForbidden
	case RecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WithErr attaches a cause to a code while keeping the code matchable with
// errors.Is.
func (c Code) WithErr(err error) error {
	if err == nil {
		return c
	}
	return &wrapped{code: c, cause: err}
}

type wrapped struct {
	code  Code
	cause error
}

func (w *wrapped) Error() string {
	return fmt.Sprintf("%s: %v", w.code.String(), w.cause)
}

func (w *wrapped) Unwrap() error {
	return w.cause
}

func (w *wrapped) Is(target error) bool {
	return target == w.code
}

// From extracts the business code carried by err, defaulting to InternalErr.
func From(err error) Code {
	if err == nil {
		return Success
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	var w *wrapped
	if errors.As(err, &w) {
		return w.code
	}
	return InternalErr
}

package codes

import (
	"errors"
	"strconv"

	"yieldpool/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From convert err to a twirp error carrying the pool error code
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	var twerr twirp.Error
	switch code {
	case core.ErrPoolNotFound:
		twerr = twirp.NotFoundError(err.Error())
	case core.ErrInvalidAmount, core.ErrInvalidUser:
		twerr = twirp.NewError(twirp.InvalidArgument, err.Error())
	case core.ErrUnauthorized:
		twerr = twirp.NewError(twirp.PermissionDenied, err.Error())
	case core.ErrInsufficientBalance, core.ErrExceedsExcess, core.ErrInsufficientLiquidity:
		twerr = twirp.NewError(twirp.FailedPrecondition, err.Error())
	default:
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(int(code)))
}

// Of custom code of twerr, falls back to Get
func Of(twerr twirp.Error) int {
	if v, err := strconv.Atoi(twerr.Meta(CustomCodeKey)); err == nil {
		return v
	}

	return Get(twerr.Code())
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

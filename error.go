package reqbody

import "errors"

var (
	ErrBadAny            = errors.New("bad value")
	ErrBadConfig         = errors.New("bad config")
	ErrBadFormat         = errors.New("bad format")
	ErrContractViolation = errors.New("contract violation")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrMissingData       = errors.New("missing data")
	ErrNotExist          = errors.New("not exist")
	ErrNotImplemented    = errors.New("not implemented")
	ErrNotValid          = errors.New("invalid")
	ErrUnexpected        = errors.New("unexpected")
)

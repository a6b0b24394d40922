package errcode

import (
	"errors"

	"ads1115-go/drivers/ads1115"
)

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"
	Unsupported   Code = "unsupported"
	UnknownPin    Code = "unknown_pin"
	UnknownBus    Code = "unknown_bus"
	Transport     Code = "transport"
	Timeout       Code = "timeout"
	Mismatch      Code = "mismatch"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap attaches a code and operation name to err. A nil err stays nil.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Msg: err.Error(), Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return MapDriverErr(err)
}

// MapDriverErr maps ads1115 driver errors to a Code.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ads1115.ErrConfig):
		return InvalidParams
	case errors.Is(err, ads1115.ErrConversionTimeout), errors.Is(err, ads1115.ErrAlertTimeout):
		return Timeout
	case ads1115.IsTransport(err):
		return Transport
	case errors.Is(err, ads1115.ErrNotContinuous), errors.Is(err, ads1115.ErrNoSignal):
		return Unsupported
	}
	return Error
}

// Status is the numeric result returned by every harness entry point.
type Status uint8

const (
	StatusOK      Status = 0
	StatusFailed  Status = 1
	StatusInvalid Status = 5
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// StatusOf folds an error onto the 0/1/5 surface. Only parameter errors are
// reported as invalid; everything else failed.
func StatusOf(err error) Status {
	switch Of(err) {
	case OK:
		return StatusOK
	case InvalidParams, UnknownPin, UnknownBus:
		return StatusInvalid
	default:
		return StatusFailed
	}
}

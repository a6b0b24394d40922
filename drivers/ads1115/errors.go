package ads1115

import "errors"

var (
	// Sentinel errors (TinyGo-safe; no fmt)
	ErrConfig            = errors.New("ads1115: invalid configuration")
	ErrConversionTimeout = errors.New("ads1115: conversion timeout")
	ErrAlertTimeout      = errors.New("ads1115: alert timeout")
	ErrNotContinuous     = errors.New("ads1115: not in continuous mode")
	ErrNoSignal          = errors.New("ads1115: no alert signal")
)

// ConfigError rejects a caller-supplied parameter before any bus transaction.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "ads1115: invalid " + e.Field + ": " + e.Reason
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// TransportError carries a bus failure verbatim.
type TransportError struct {
	Op  string // "read" or "write"
	Reg Register
	Err error
}

func (e *TransportError) Error() string {
	return "ads1115: " + e.Op + " " + e.Reg.String() + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err came from the bus.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

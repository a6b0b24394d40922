package errcode

import (
	"errors"
	"testing"

	"ads1115-go/drivers/ads1115"
)

func TestMapDriverErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, OK},
		{"config", &ads1115.ConfigError{Field: "gain", Reason: "out of range"}, InvalidParams},
		{"conv timeout", ads1115.ErrConversionTimeout, Timeout},
		{"alert timeout", ads1115.ErrAlertTimeout, Timeout},
		{"transport", &ads1115.TransportError{Op: "read", Reg: ads1115.RegConfig, Err: errors.New("nack")}, Transport},
		{"not continuous", ads1115.ErrNotContinuous, Unsupported},
		{"other", errors.New("x"), Error},
	}
	for _, c := range cases {
		if got := MapDriverErr(c.err); got != c.want {
			t.Fatalf("%s: got %q want %q", c.name, got, c.want)
		}
	}
}

func TestOfUnwraps(t *testing.T) {
	if got := Of(InvalidParams); got != InvalidParams {
		t.Fatalf("bare code: %q", got)
	}
	err := Wrap(Mismatch, "register", errors.New("config readback"))
	if got := Of(err); got != Mismatch {
		t.Fatalf("wrapped: %q", got)
	}
	if Wrap(Mismatch, "register", nil) != nil {
		t.Fatal("Wrap(nil) should be nil")
	}
	if got := Of(ads1115.ErrAlertTimeout); got != Timeout {
		t.Fatalf("driver fallback: %q", got)
	}
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want Status
	}{
		{nil, StatusOK},
		{&ads1115.ConfigError{Field: "thresholds", Reason: "low above high"}, StatusInvalid},
		{UnknownPin, StatusInvalid},
		{ads1115.ErrConversionTimeout, StatusFailed},
		{Wrap(Mismatch, "register", errors.New("x")), StatusFailed},
	}
	for _, c := range cases {
		if got := StatusOf(c.err); got != c.want {
			t.Fatalf("StatusOf(%v)=%d want %d", c.err, got, c.want)
		}
	}
	if StatusInvalid != 5 || StatusFailed != 1 {
		t.Fatal("status values are part of the contract")
	}
}

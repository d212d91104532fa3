package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks a missing or out-of-domain numeric input. Nothing is
// computed when it is returned.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidRange marks a year range whose end precedes its start or that
// spans more than MaxYearSpan years.
var ErrInvalidRange = errors.New("invalid range")

// PriceModelVariant selects which curve the price model projects.
type PriceModelVariant int

const (
	Standard PriceModelVariant = iota
	Conservative
)

func (v PriceModelVariant) String() string {
	switch v {
	case Standard:
		return "standard"
	case Conservative:
		return "conservative"
	default:
		return "unknown"
	}
}

// Label is the human-facing name used in reports and forms.
func (v PriceModelVariant) Label() string {
	switch v {
	case Standard:
		return "Standard model"
	case Conservative:
		return "Conservative model (-30%)"
	default:
		return "Unknown model"
	}
}

// ParsePriceModelVariant accepts "standard" or "conservative" (case-insensitive).
func ParsePriceModelVariant(s string) (PriceModelVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return Standard, nil
	case "conservative":
		return Conservative, nil
	default:
		return Standard, fmt.Errorf("%w: unknown price model %q (want standard or conservative)", ErrInvalidInput, s)
	}
}

func (v PriceModelVariant) MarshalText() ([]byte, error) {
	if v != Standard && v != Conservative {
		return nil, fmt.Errorf("%w: unknown price model %d", ErrInvalidInput, int(v))
	}
	return []byte(v.String()), nil
}

func (v *PriceModelVariant) UnmarshalText(text []byte) error {
	parsed, err := ParsePriceModelVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// WithdrawalMode selects how the yearly withdrawal target is derived.
type WithdrawalMode int

const (
	// Fixed withdraws a constant local-currency amount each year.
	Fixed WithdrawalMode = iota
	// Percentage withdraws a share of the remaining holdings' value each year.
	Percentage
)

func (m WithdrawalMode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Percentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// ParseWithdrawalMode accepts "fixed" or "percentage" (case-insensitive).
func ParseWithdrawalMode(s string) (WithdrawalMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "":
		return Fixed, nil
	case "percentage", "percent", "pct":
		return Percentage, nil
	default:
		return Fixed, fmt.Errorf("%w: unknown withdrawal mode %q (want fixed or percentage)", ErrInvalidInput, s)
	}
}

func (m WithdrawalMode) MarshalText() ([]byte, error) {
	if m != Fixed && m != Percentage {
		return nil, fmt.Errorf("%w: unknown withdrawal mode %d", ErrInvalidInput, int(m))
	}
	return []byte(m.String()), nil
}

func (m *WithdrawalMode) UnmarshalText(text []byte) error {
	parsed, err := ParseWithdrawalMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// DecumulationState tracks whether a withdrawal plan still holds any BTC.
type DecumulationState int

const (
	Active DecumulationState = iota
	Depleted
)

func (s DecumulationState) String() string {
	switch s {
	case Active:
		return "active"
	case Depleted:
		return "depleted"
	default:
		return "unknown"
	}
}

func (s DecumulationState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DecumulationState) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "active":
		*s = Active
	case "depleted":
		*s = Depleted
	default:
		return fmt.Errorf("%w: unknown decumulation state %q", ErrInvalidInput, string(text))
	}
	return nil
}

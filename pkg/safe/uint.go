// Package safe provides numeric conversions and arithmetic with overflow checks.
package safe

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOverflow is returned when a result does not fit the target type.
	ErrOverflow = errors.New("integer overflow")
	// ErrUnderflow is returned when a subtraction would go below zero.
	ErrUnderflow = errors.New("integer underflow")
)

type integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Uint32 converts signed or unsigned integers to uint32 with range validation.
func Uint32[T integer](v T) (uint32, error) {
	wide, err := Uint64(v)
	if err != nil {
		return 0, fmt.Errorf("value %d out of uint32 range: %w", v, err)
	}
	if wide > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range: %w", v, ErrOverflow)
	}
	return uint32(wide), nil
}

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T integer](v T) (uint64, error) {
	switch value := any(v).(type) {
	case int:
		if value < 0 {
			return 0, fmt.Errorf("value %d is negative: %w", v, ErrUnderflow)
		}
		return uint64(value), nil
	case int32:
		if value < 0 {
			return 0, fmt.Errorf("value %d is negative: %w", v, ErrUnderflow)
		}
		return uint64(value), nil
	case int64:
		if value < 0 {
			return 0, fmt.Errorf("value %d is negative: %w", v, ErrUnderflow)
		}
		return uint64(value), nil
	case uint:
		return uint64(value), nil
	case uint32:
		return uint64(value), nil
	case uint64:
		return value, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// AddUint64 returns a+b or ErrOverflow.
func AddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return a + b, nil
}

// SubUint64 returns a-b or ErrUnderflow.
func SubUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%d - %d: %w", a, b, ErrUnderflow)
	}
	return a - b, nil
}

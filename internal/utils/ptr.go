package utils

import (
	"fmt"
	"strconv"
	"strings"
)

func Ptr[T any](v T) *T {
	return &v
}

func OrZero[T comparable](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// Returns nil on an empty or all whitespace string
func StringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// IntOrNil parses a form field, treating a blank field as absent.
func IntOrNil(s string) (*int, error) {
	trimmed := StringOrNil(s)
	if trimmed == nil {
		return nil, nil
	}
	v, err := strconv.Atoi(*trimmed)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", *trimmed)
	}
	return &v, nil
}

// ParseIDs reads a comma separated id list such as "4, 9,12".
func ParseIDs(s string) ([]int, error) {
	ids := []int{}
	for _, part := range strings.Split(s, ",") {
		id, err := IntOrNil(part)
		if err != nil {
			return nil, err
		}
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids, nil
}

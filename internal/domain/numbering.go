package domain

import (
	"fmt"
	"strconv"
)

const (
	VersionPrefix         byte = 'v'
	InternalVersionPrefix byte = 'E'
)

// ParseNumber returns the integer suffix of values like "v007" or "E012".
func ParseNumber(prefix byte, value string) (int, error) {
	if len(value) < 2 || value[0] != prefix {
		return 0, &VersionNumberError{Prefix: prefix, Value: value}
	}
	for i := 1; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, &VersionNumberError{Prefix: prefix, Value: value}
		}
	}
	n, err := strconv.Atoi(value[1:])
	if err != nil {
		return 0, &VersionNumberError{Prefix: prefix, Value: value}
	}
	return n, nil
}

func FormatNumber(prefix byte, n int) string {
	return fmt.Sprintf("%c%03d", prefix, n)
}

// ParseCanonicalNumber accepts only the form FormatNumber produces for a
// positive n: "v002" passes, "v2", "v0002" and "v000" do not.
func ParseCanonicalNumber(prefix byte, value string) (int, error) {
	n, err := ParseNumber(prefix, value)
	if err != nil {
		return 0, err
	}
	if n < 1 || value != FormatNumber(prefix, n) {
		return 0, &VersionNumberError{Prefix: prefix, Value: value}
	}
	return n, nil
}

// HighestNumber returns the numeric maximum of existing, or 0 when empty.
func HighestNumber(prefix byte, existing []string) (int, error) {
	highest := 0
	for _, value := range existing {
		n, err := ParseNumber(prefix, value)
		if err != nil {
			return 0, err
		}
		if n > highest {
			highest = n
		}
	}
	return highest, nil
}

// NextNumber computes the successor of the numerically greatest existing
// value. With no existing values the first number (…001) is returned.
func NextNumber(prefix byte, existing []string) (string, error) {
	highest, err := HighestNumber(prefix, existing)
	if err != nil {
		return "", err
	}
	return FormatNumber(prefix, highest+1), nil
}

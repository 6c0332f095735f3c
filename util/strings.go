package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrOutOfRange    = errors.New("value out of range")
	ErrInvalidNumber = errors.New("invalid number")
)

// Split breaks s around each instance of sep. If max > 0, at most max
// tokens are returned and the last one holds the rest of s verbatim.
func Split(s, sep string, max int) []string {
	if max <= 0 {
		max = -1
	}
	return strings.SplitN(s, sep, max)
}

// Fields splits s around runs of whitespace. If max > 0, at most max tokens
// are returned and the last one holds the remainder of s (leading whitespace
// removed) with its embedded whitespace intact.
func Fields(s string, max int) []string {
	if max <= 0 {
		return strings.Fields(s)
	}

	var tokens []string
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	for rest != "" {
		if len(tokens) == max-1 {
			tokens = append(tokens, rest)
			break
		}
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			tokens = append(tokens, rest)
			break
		}
		tokens = append(tokens, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}

	return tokens
}

func ParseUint16(s string) (uint16, error) {
	v, err := parseUint(s, 16)
	return uint16(v), err
}

func ParseUint32(s string) (uint32, error) {
	v, err := parseUint(s, 32)
	return uint32(v), err
}

func ParseUint64(s string) (uint64, error) {
	return parseUint(s, 64)
}

func ParseInt32(s string) (int32, error) {
	v, err := parseInt(s, 32)
	return int32(v), err
}

func ParseInt64(s string) (int64, error) {
	return parseInt(s, 64)
}

func parseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, numError(s, bits, false, err)
	}
	return v, nil
}

func parseInt(s string, bits int) (int64, error) {
	v, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0, numError(s, bits, true, err)
	}
	return v, nil
}

func numError(s string, bits int, signed bool, err error) error {
	kind := "unsigned"
	if signed {
		kind = "signed"
	}
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: '%s' does not fit a %d-bit %s integer", ErrOutOfRange, s, bits, kind)
	}
	return fmt.Errorf("%w: '%s' is not a %d-bit %s integer", ErrInvalidNumber, s, bits, kind)
}

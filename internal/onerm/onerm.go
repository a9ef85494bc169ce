// Package onerm estimates one-rep maxes from rep-max notation.
package onerm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/meltforce/barbell/internal/barbell"
)

// ErrInvalid is returned for input that is neither a weight nor a rep max.
var ErrInvalid = errors.New("invalid max")

// repMaxRe matches: 5x300, 5 X 302.5
var repMaxRe = regexp.MustCompile(`^(\d+)\s*[xX]\s*(\d+(?:\.\d+)?)$`)

// Parse reads a max as typed by an athlete. A plain number is taken as the
// 1RM. "REPSxWEIGHT" is estimated with Epley and rounded to 5.
func Parse(s string) (float64, error) {
	return ParseWith(s, MethodEpley)
}

// ParseWith is Parse with the rep-max estimate computed by method.
func ParseWith(s string, method Method) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalid)
	}
	if m := repMaxRe.FindStringSubmatch(s); m != nil {
		reps, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("%w: reps %q", ErrInvalid, m[1])
		}
		weight, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: weight %q", ErrInvalid, m[2])
		}
		if reps == 0 || weight == 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
		}
		return Estimate(weight, reps, method), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return v, nil
}

// Estimate rounds the method's estimate for weight lifted for reps to the
// nearest 5.
func Estimate(weight float64, reps int, method Method) float64 {
	return float64(barbell.RoundWeight(Calculate(weight, reps, method), barbell.DefaultPrecision, 0))
}

// Epley formula: 1RM = weight * (1 + 0.0333 * reps)
func Epley(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	return weight*float64(reps)*0.0333 + weight
}

// Brzycki formula: 1RM = weight * (36 / (37 - reps))
// Undefined from 37 reps up, where weight is returned unchanged.
func Brzycki(weight float64, reps int) float64 {
	if reps <= 1 || reps >= 37 {
		return weight
	}
	return weight * 36 / float64(37-reps)
}

// Method names a 1RM formula.
type Method string

const (
	MethodEpley   Method = "epley"
	MethodBrzycki Method = "brzycki"
	MethodAverage Method = "average"
)

// ParseMethod reads a method name. Empty selects Epley.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MethodEpley, nil
	case MethodEpley, MethodBrzycki, MethodAverage:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown method %q", ErrInvalid, s)
	}
}

// Calculate returns the unrounded estimate for method. Unknown methods
// fall back to Epley.
func Calculate(weight float64, reps int, method Method) float64 {
	switch method {
	case MethodBrzycki:
		return Brzycki(weight, reps)
	case MethodAverage:
		return (Epley(weight, reps) + Brzycki(weight, reps)) / 2
	default:
		return Epley(weight, reps)
	}
}

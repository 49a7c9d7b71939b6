package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrNotNumeric is returned by StrictPolicy for input that is not a finite number.
var ErrNotNumeric = errors.New("not a number")

// NumberPolicy turns raw input text (qty, unit price) into a number.
type NumberPolicy interface {
	Coerce(field, raw string) (float64, error)
	Name() string
}

// PermissivePolicy maps anything that is not a finite number to 0.
type PermissivePolicy struct{}

func (PermissivePolicy) Name() string { return "permissive" }

func (PermissivePolicy) Coerce(_ string, raw string) (float64, error) {
	v, ok := parseFinite(raw)
	if !ok {
		return 0, nil
	}
	return v, nil
}

// StrictPolicy rejects non-numeric input. Empty input is still 0.
type StrictPolicy struct{}

func (StrictPolicy) Name() string { return "strict" }

func (StrictPolicy) Coerce(field string, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	v, ok := parseFinite(raw)
	if !ok {
		return 0, fmt.Errorf("%s %q: %w", field, raw, ErrNotNumeric)
	}
	return v, nil
}

// PolicyByName resolves a configured policy name. Unknown names fall back to permissive.
func PolicyByName(name string) NumberPolicy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "strict":
		return StrictPolicy{}
	default:
		return PermissivePolicy{}
	}
}

// Number is the permissive coercion used wherever a policy is not in play
// (e.g. live previews of in-progress input).
func Number(raw string) float64 {
	v, _ := PermissivePolicy{}.Coerce("", raw)
	return v
}

func parseFinite(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatMoney renders v with thousands separators and at most three fraction
// digits: 6000 -> "6,000", 4500.5 -> "4,500.5".
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return humanize.Commaf(v)
}

// FormatInput renders a number the way it is shown inside an editable cell.
func FormatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package terrain

import (
	"strconv"
	"strings"

	worlderrors "worldforge/internal/errors"
	"worldforge/internal/worldgen/rng"
)

// splitRange finds the '-' that joins a min-max range token, per the
// external grammar: the left side ends in digit/dot/close-paren/m/%, the
// right side starts with digit/dot/sign. A leading '-' (a negative
// literal) is never treated as the split point.
func splitRange(tok string) (lo, hi string, ok bool) {
	for i := 1; i < len(tok); i++ {
		if tok[i] != '-' {
			continue
		}
		left := tok[i-1]
		if !(isDigit(left) || left == '.' || left == ')' || left == 'm' || left == '%') {
			continue
		}
		if i+1 >= len(tok) {
			continue
		}
		right := tok[i+1]
		if !(isDigit(right) || right == '.' || right == '+' || right == '-') {
			continue
		}
		return tok[:i], tok[i+1:], true
	}
	return "", "", false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func stripSuffix(tok string) (trimmed string, isMeter, isPercent bool) {
	if strings.HasSuffix(tok, "m") {
		return strings.TrimSuffix(tok, "m"), true, false
	}
	if strings.HasSuffix(tok, "%") {
		return strings.TrimSuffix(tok, "%"), false, true
	}
	return tok, false, false
}

func parseFloatToken(tok string) (float64, error) {
	trimmed, _, _ := stripSuffix(tok)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, worlderrors.NewTemplateError(0, "", "malformed numeric token: "+tok)
	}
	return v, nil
}

// resolveNumeric parses a literal or "min-max" range token and resolves a
// concrete value, drawing uniformly from the stage RNG for ranges.
func resolveNumeric(tok string, r *rng.Source) (float64, error) {
	if lo, hi, ok := splitRange(tok); ok {
		loV, err := parseFloatToken(lo)
		if err != nil {
			return 0, err
		}
		hiV, err := parseFloatToken(hi)
		if err != nil {
			return 0, err
		}
		if loV > hiV {
			loV, hiV = hiV, loV
		}
		return r.Uniform(loV, hiV), nil
	}
	return parseFloatToken(tok)
}

func resolveInt(tok string, r *rng.Source) (int, error) {
	v, err := resolveNumeric(tok, r)
	if err != nil {
		return 0, err
	}
	return int(v + 0.5), nil
}

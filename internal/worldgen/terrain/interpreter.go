package terrain

import (
	"strconv"
	"strings"

	worlderrors "worldforge/internal/errors"
	"worldforge/internal/worldgen/rng"
)

// ExecuteDSL runs a template script against field, in place. It is the
// interpreter exposed as a public entry point for ad hoc scripts.
func ExecuteDSL(f *Field, script string, r *rng.Source) error {
	lines := strings.Split(script, "\n")
	for lineNo, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		if err := execLine(f, tokens, r, lineNo+1); err != nil {
			return err
		}
	}
	return nil
}

func execLine(f *Field, tokens []string, r *rng.Source, lineNo int) error {
	op := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch op {
	case "hill", "pit":
		if len(args) < 4 {
			return worlderrors.NewTemplateError(lineNo, op, "expected 4 arguments: count height% x% y%")
		}
		c, err := resolveInt(args[0], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		h, err := resolveNumeric(args[1], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		x, err := resolveNumeric(args[2], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		y, err := resolveNumeric(args[3], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		if op == "hill" {
			opHill(f, c, h, x, y, r)
		} else {
			opPit(f, c, h, x, y, r)
		}

	case "range", "trough":
		if len(args) < 4 {
			return worlderrors.NewTemplateError(lineNo, op, "expected 4 arguments: count height% x% y%")
		}
		c, err := resolveInt(args[0], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		h, err := resolveNumeric(args[1], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		x, err := resolveNumeric(args[2], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		y, err := resolveNumeric(args[3], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		opRangeOrTrough(f, c, h, x, y, r, op == "range")

	case "mask":
		if len(args) < 1 {
			return worlderrors.NewTemplateError(lineNo, op, "expected 1 argument: factor")
		}
		factor, err := resolveNumeric(args[0], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		opMask(f, factor)

	case "strait":
		if len(args) < 2 {
			return worlderrors.NewTemplateError(lineNo, op, "expected 2 arguments: width direction")
		}
		w, err := resolveInt(args[0], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		dir := strings.ToLower(args[1])
		if dir != "horizontal" && dir != "vertical" {
			return worlderrors.NewTemplateError(lineNo, op, "unknown direction: "+args[1])
		}
		opStrait(f, w, dir == "horizontal", r)

	case "add", "multiply":
		if len(args) < 1 {
			return worlderrors.NewTemplateError(lineNo, op, "expected at least 1 argument")
		}
		v, err := resolveNumeric(args[0], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		b, err := parseBand(args[1:], lineNo, op)
		if err != nil {
			return err
		}
		if op == "add" {
			opAdd(f, v, b)
		} else {
			opMultiply(f, v, b)
		}

	case "smooth":
		radius := 1.0
		if len(args) > 0 {
			v, err := resolveNumeric(args[0], r)
			if err != nil {
				return wrapLine(err, lineNo, op)
			}
			radius = v
		}
		opSmooth(f, radius)

	case "invert":
		if len(args) < 2 {
			return worlderrors.NewTemplateError(lineNo, op, "expected 2 arguments: probability axis")
		}
		p, err := resolveNumeric(args[0], r)
		if err != nil {
			return wrapLine(err, lineNo, op)
		}
		axis := strings.ToLower(args[1])
		if axis != "x" && axis != "y" && axis != "both" {
			return worlderrors.NewTemplateError(lineNo, op, "unknown axis: "+args[1])
		}
		opInvert(f, p, axis, r)

	default:
		return worlderrors.NewTemplateError(lineNo, op, "unknown opcode: "+tokens[0])
	}
	return nil
}

func wrapLine(err error, lineNo int, op string) error {
	if te, ok := err.(*worlderrors.TemplateError); ok {
		te.Line = lineNo
		te.Op = op
		return te
	}
	return worlderrors.NewTemplateError(lineNo, op, err.Error())
}

func parseBand(args []string, lineNo int, op string) (band, error) {
	if len(args) == 0 {
		return band{mode: "all"}, nil
	}
	switch strings.ToLower(args[0]) {
	case "land":
		return band{mode: "land"}, nil
	case "water":
		return band{mode: "water"}, nil
	case "all":
		return band{mode: "all"}, nil
	}
	if len(args) < 2 {
		return band{}, worlderrors.NewTemplateError(lineNo, op, "unknown band selector: "+args[0])
	}
	minV, err := parseMeterLiteral(args[0])
	if err != nil {
		return band{}, worlderrors.NewTemplateError(lineNo, op, "malformed range bound: "+args[0])
	}
	maxV, err := parseMeterLiteral(args[1])
	if err != nil {
		return band{}, worlderrors.NewTemplateError(lineNo, op, "malformed range bound: "+args[1])
	}
	return band{mode: "range", minM: minV, maxM: maxV}, nil
}

func parseMeterLiteral(tok string) (float64, error) {
	trimmed, _, _ := stripSuffix(tok)
	return strconv.ParseFloat(trimmed, 64)
}

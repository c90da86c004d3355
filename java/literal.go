package java

import (
	"math"
	"strconv"
	"strings"
)

// Literal evaluates a Java literal expression and returns what
// String.valueOf would produce for it. isNull is set for the null literal.
// ok is false when expr is not a literal this evaluator understands.
func Literal(expr string) (value string, isNull, ok bool) {
	expr = strings.TrimSpace(expr)
	for strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}
	switch {
	case expr == "":
		return "", false, false
	case expr == "null":
		return "", true, true
	case expr == "true" || expr == "false":
		return expr, false, true
	case strings.HasPrefix(expr, `"`):
		s, err := strconv.Unquote(expr)
		if err != nil {
			if !strings.HasSuffix(expr, `"`) || len(expr) < 2 {
				return "", false, false
			}
			s = expr[1 : len(expr)-1]
		}
		return s, false, true
	case strings.HasPrefix(expr, "'"):
		r, _, tail, err := strconv.UnquoteChar(strings.TrimSuffix(expr[1:], "'"), '\'')
		if err != nil || tail != "" {
			return "", false, false
		}
		return string(r), false, true
	}

	negative := false
	if strings.HasPrefix(expr, "-") {
		negative = true
		expr = strings.TrimSpace(expr[1:])
	}
	if v, ok := integerLiteral(expr, negative); ok {
		return v, false, true
	}
	if v, ok := floatLiteral(expr, negative); ok {
		return v, false, true
	}
	return "", false, false
}

// integerLiteral evaluates a decimal, hex, octal or binary literal. Hex,
// octal and binary literals denote two's complement bit patterns, so they
// are narrowed to int, or to long with an L suffix: 0xFFFFFFFF is -1.
func integerLiteral(expr string, negative bool) (string, bool) {
	s := strings.ReplaceAll(expr, "_", "")
	long := strings.HasSuffix(s, "l") || strings.HasSuffix(s, "L")
	if long {
		s = s[:len(s)-1]
	}
	if s == "" {
		return "", false
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		base, s = 2, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, s = 8, s[1:]
	}
	n, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return "", false
	}

	if base == 10 {
		if negative && n != 0 {
			return "-" + strconv.FormatUint(n, 10), true
		}
		return strconv.FormatUint(n, 10), true
	}
	var v int64
	if long {
		v = int64(n)
	} else {
		if n > math.MaxUint32 {
			return "", false
		}
		v = int64(int32(uint32(n)))
	}
	if negative {
		v = -v
	}
	return strconv.FormatInt(v, 10), true
}

func floatLiteral(expr string, negative bool) (string, bool) {
	s := strings.ReplaceAll(expr, "_", "")
	bits := 64
	switch {
	case strings.HasSuffix(s, "f") || strings.HasSuffix(s, "F"):
		bits = 32
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "d") || strings.HasSuffix(s, "D"):
		s = s[:len(s)-1]
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return "", false
	}
	if negative {
		f = -f
	}
	return formatJavaFloat(f, bits), true
}

// formatJavaFloat mimics Double.toString / Float.toString: plain notation
// with at least one fractional digit inside [1e-3, 1e7), computerized
// scientific notation outside of it.
func formatJavaFloat(f float64, bits int) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(f, 'f', -1, bits)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(f, 'E', -1, bits)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	exp = strings.TrimPrefix(exp, "+")
	if strings.HasPrefix(exp, "-") {
		exp = "-" + strings.TrimLeft(exp[1:], "0")
	} else {
		exp = strings.TrimLeft(exp, "0")
	}
	return mantissa + "E" + exp
}

// ZeroValue returns String.valueOf of the default value of an uninitialized
// field of the given type. isNull is set for reference types.
func ZeroValue(t TypeModel) (value string, isNull bool) {
	if !t.IsPrimitive() {
		return "", true
	}
	switch t.Name {
	case "boolean":
		return "false", false
	case "float", "double":
		return "0.0", false
	case "char":
		return "\u0000", false
	default:
		return "0", false
	}
}

// Widen converts the String.valueOf form of an integral constant to the form
// it takes once widened to a floating-point type t. Other values are
// returned unchanged.
func Widen(value string, t TypeModel) string {
	if t.IsArray() {
		return value
	}
	bits := 64
	switch t.Name {
	case "float", "java.lang.Float":
		bits = 32
	case "double", "java.lang.Double":
	default:
		return value
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return value
	}
	return formatJavaFloat(float64(n), bits)
}

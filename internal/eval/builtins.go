package eval

import (
	"fmt"
	"math"
	"strings"
)

// registerBuiltins installs the builtin function set into a namespace.
// Builtins are plain values of type Func, so config bindings or earlier
// examples may shadow them.
func registerBuiltins(ns *Namespace) {
	ns.Bind("len", Func(builtinLen))
	ns.Bind("abs", Func(builtinAbs))
	ns.Bind("min", Func(builtinMin))
	ns.Bind("max", Func(builtinMax))
	ns.Bind("pow", Func(builtinPow))
	ns.Bind("sqrt", Func(builtinSqrt))
	ns.Bind("round", Func(builtinRound))
	ns.Bind("upper", Func(builtinUpper))
	ns.Bind("lower", Func(builtinLower))
	ns.Bind("trim", Func(builtinTrim))
	ns.Bind("repeat", Func(builtinRepeat))
	ns.Bind("replace", Func(builtinReplace))
	ns.Bind("contains", Func(builtinContains))
	ns.Bind("split", Func(builtinSplit))
	ns.Bind("join", Func(builtinJoin))
	ns.Bind("list", Func(builtinList))
	ns.Bind("sprintf", Func(builtinSprintf))
}

func wantArgs(name string, args []interface{}, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func argString(name string, args []interface{}, i int) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %s", name, i+1, typeName(args[i]))
	}
	return s, nil
}

func argInt(name string, args []interface{}, i int) (int64, error) {
	n, ok := args[i].(int64)
	if !ok {
		return 0, fmt.Errorf("%s: argument %d must be an integer, got %s", name, i+1, typeName(args[i]))
	}
	return n, nil
}

func argNumber(name string, args []interface{}, i int) (float64, error) {
	f, ok := toFloat(args[i])
	if !ok {
		return 0, fmt.Errorf("%s: argument %d must be a number, got %s", name, i+1, typeName(args[i]))
	}
	return f, nil
}

func builtinLen(args ...interface{}) (interface{}, error) {
	if err := wantArgs("len", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case string:
		return int64(len([]rune(v))), nil
	case []interface{}:
		return int64(len(v)), nil
	default:
		return nil, fmt.Errorf("len: cannot take length of %s", typeName(args[0]))
	}
}

func builtinAbs(args ...interface{}) (interface{}, error) {
	if err := wantArgs("abs", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case int64:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case float64:
		return math.Abs(v), nil
	default:
		return nil, fmt.Errorf("abs: argument must be a number, got %s", typeName(args[0]))
	}
}

func builtinMin(args ...interface{}) (interface{}, error) {
	return pickExtreme("min", args, func(a, b float64) bool { return a < b })
}

func builtinMax(args ...interface{}) (interface{}, error) {
	return pickExtreme("max", args, func(a, b float64) bool { return a > b })
}

func pickExtreme(name string, args []interface{}, better func(a, b float64) bool) (interface{}, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%s takes at least 2 arguments, got %d", name, len(args))
	}
	best := args[0]
	bestF, ok := toFloat(best)
	if !ok {
		return nil, fmt.Errorf("%s: argument 1 must be a number, got %s", name, typeName(best))
	}
	for i, arg := range args[1:] {
		f, ok := toFloat(arg)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d must be a number, got %s", name, i+2, typeName(arg))
		}
		if better(f, bestF) {
			best, bestF = arg, f
		}
	}
	return best, nil
}

func builtinPow(args ...interface{}) (interface{}, error) {
	if err := wantArgs("pow", args, 2); err != nil {
		return nil, err
	}
	base, err := argNumber("pow", args, 0)
	if err != nil {
		return nil, err
	}
	exp, err := argNumber("pow", args, 1)
	if err != nil {
		return nil, err
	}
	result := math.Pow(base, exp)
	// Integer base and non-negative integer exponent stay integral
	if _, ok := args[0].(int64); ok {
		if ei, ok := args[1].(int64); ok && ei >= 0 {
			return int64(result), nil
		}
	}
	return result, nil
}

func builtinSqrt(args ...interface{}) (interface{}, error) {
	if err := wantArgs("sqrt", args, 1); err != nil {
		return nil, err
	}
	f, err := argNumber("sqrt", args, 0)
	if err != nil {
		return nil, err
	}
	if f < 0 {
		return nil, fmt.Errorf("sqrt: negative argument %v", args[0])
	}
	return math.Sqrt(f), nil
}

func builtinRound(args ...interface{}) (interface{}, error) {
	if err := wantArgs("round", args, 1); err != nil {
		return nil, err
	}
	f, err := argNumber("round", args, 0)
	if err != nil {
		return nil, err
	}
	return int64(math.Round(f)), nil
}

func builtinUpper(args ...interface{}) (interface{}, error) {
	if err := wantArgs("upper", args, 1); err != nil {
		return nil, err
	}
	s, err := argString("upper", args, 0)
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(s), nil
}

func builtinLower(args ...interface{}) (interface{}, error) {
	if err := wantArgs("lower", args, 1); err != nil {
		return nil, err
	}
	s, err := argString("lower", args, 0)
	if err != nil {
		return nil, err
	}
	return strings.ToLower(s), nil
}

func builtinTrim(args ...interface{}) (interface{}, error) {
	if err := wantArgs("trim", args, 1); err != nil {
		return nil, err
	}
	s, err := argString("trim", args, 0)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(s), nil
}

func builtinRepeat(args ...interface{}) (interface{}, error) {
	if err := wantArgs("repeat", args, 2); err != nil {
		return nil, err
	}
	s, err := argString("repeat", args, 0)
	if err != nil {
		return nil, err
	}
	n, err := argInt("repeat", args, 1)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("repeat: negative count %d", n)
	}
	return strings.Repeat(s, int(n)), nil
}

func builtinReplace(args ...interface{}) (interface{}, error) {
	if err := wantArgs("replace", args, 3); err != nil {
		return nil, err
	}
	s, err := argString("replace", args, 0)
	if err != nil {
		return nil, err
	}
	old, err := argString("replace", args, 1)
	if err != nil {
		return nil, err
	}
	new_, err := argString("replace", args, 2)
	if err != nil {
		return nil, err
	}
	return strings.ReplaceAll(s, old, new_), nil
}

func builtinContains(args ...interface{}) (interface{}, error) {
	if err := wantArgs("contains", args, 2); err != nil {
		return nil, err
	}
	s, err := argString("contains", args, 0)
	if err != nil {
		return nil, err
	}
	sub, err := argString("contains", args, 1)
	if err != nil {
		return nil, err
	}
	return strings.Contains(s, sub), nil
}

func builtinSplit(args ...interface{}) (interface{}, error) {
	if err := wantArgs("split", args, 2); err != nil {
		return nil, err
	}
	s, err := argString("split", args, 0)
	if err != nil {
		return nil, err
	}
	sep, err := argString("split", args, 1)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make([]interface{}, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}

func builtinJoin(args ...interface{}) (interface{}, error) {
	if err := wantArgs("join", args, 2); err != nil {
		return nil, err
	}
	items, ok := args[0].([]interface{})
	if !ok {
		return nil, fmt.Errorf("join: argument 1 must be a list, got %s", typeName(args[0]))
	}
	sep, err := argString("join", args, 1)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("join: element %d is not a string", i+1)
		}
		parts[i] = s
	}
	return strings.Join(parts, sep), nil
}

func builtinList(args ...interface{}) (interface{}, error) {
	out := make([]interface{}, len(args))
	copy(out, args)
	return out, nil
}

func builtinSprintf(args ...interface{}) (interface{}, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("sprintf takes at least 1 argument")
	}
	format, err := argString("sprintf", args, 0)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf(format, args[1:]...), nil
}

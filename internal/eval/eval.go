package eval

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"
)

// bindingRegex matches "name := expression" example lines
var bindingRegex = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:=\s*(.+)$`)

// Eval evaluates one example source line against the namespace.
//
// A line of the form "name := expr" evaluates expr, binds the result in the
// namespace for later examples in the same scope, and produces no output
// (nil result). Any other line is parsed as a single expression and its
// value returned.
func Eval(ns *Namespace, src string) (interface{}, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty expression")
	}

	if m := bindingRegex.FindStringSubmatch(src); m != nil {
		value, err := evalSource(ns, m[2])
		if err != nil {
			return nil, err
		}
		ns.Bind(m[1], value)
		return nil, nil
	}

	return evalSource(ns, src)
}

// evalSource parses and evaluates a single expression
func evalSource(ns *Namespace, src string) (interface{}, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	return evalExpr(ns, expr)
}

// evalExpr evaluates a parsed expression node
func evalExpr(ns *Namespace, expr ast.Expr) (interface{}, error) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return evalLiteral(e)

	case *ast.Ident:
		return evalIdent(ns, e)

	case *ast.ParenExpr:
		return evalExpr(ns, e.X)

	case *ast.UnaryExpr:
		return evalUnary(ns, e)

	case *ast.BinaryExpr:
		return evalBinary(ns, e)

	case *ast.CallExpr:
		return evalCall(ns, e)

	case *ast.IndexExpr:
		return evalIndex(ns, e)

	default:
		return nil, fmt.Errorf("unsupported expression %T", expr)
	}
}

func evalLiteral(lit *ast.BasicLit) (interface{}, error) {
	switch lit.Kind {
	case token.INT:
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", lit.Value)
		}
		return n, nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q", lit.Value)
		}
		return f, nil
	case token.STRING:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid string %s", lit.Value)
		}
		return s, nil
	case token.CHAR:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid character %s", lit.Value)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported literal kind %s", lit.Kind)
	}
}

func evalIdent(ns *Namespace, ident *ast.Ident) (interface{}, error) {
	switch ident.Name {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "nil":
		return nil, nil
	}
	if v, ok := ns.Lookup(ident.Name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("undefined name %q", ident.Name)
}

func evalUnary(ns *Namespace, e *ast.UnaryExpr) (interface{}, error) {
	operand, err := evalExpr(ns, e.X)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.SUB:
		switch v := operand.(type) {
		case int64:
			return -v, nil
		case float64:
			return -v, nil
		}
		return nil, fmt.Errorf("cannot negate %s", typeName(operand))
	case token.ADD:
		switch operand.(type) {
		case int64, float64:
			return operand, nil
		}
		return nil, fmt.Errorf("unary + requires a number, got %s", typeName(operand))
	case token.NOT:
		b, ok := operand.(bool)
		if !ok {
			return nil, fmt.Errorf("! requires a boolean, got %s", typeName(operand))
		}
		return !b, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", e.Op)
	}
}

func evalBinary(ns *Namespace, e *ast.BinaryExpr) (interface{}, error) {
	// Logical operators short-circuit: the right side only evaluates
	// when the left side does not decide the result.
	if e.Op == token.LAND || e.Op == token.LOR {
		return evalLogical(ns, e)
	}

	left, err := evalExpr(ns, e.X)
	if err != nil {
		return nil, err
	}
	right, err := evalExpr(ns, e.Y)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.ADD, token.SUB, token.MUL, token.QUO, token.REM:
		return evalArithmetic(e.Op, left, right)
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return evalComparison(e.Op, left, right)
	default:
		return nil, fmt.Errorf("unsupported operator %s", e.Op)
	}
}

func evalLogical(ns *Namespace, e *ast.BinaryExpr) (interface{}, error) {
	left, err := evalExpr(ns, e.X)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(bool)
	if !ok {
		return nil, fmt.Errorf("%s requires booleans, got %s", e.Op, typeName(left))
	}
	if e.Op == token.LAND && !lb {
		return false, nil
	}
	if e.Op == token.LOR && lb {
		return true, nil
	}

	right, err := evalExpr(ns, e.Y)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(bool)
	if !ok {
		return nil, fmt.Errorf("%s requires booleans, got %s", e.Op, typeName(right))
	}
	return rb, nil
}

func evalArithmetic(op token.Token, left, right interface{}) (interface{}, error) {
	// String concatenation and repetition-free string ops
	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok || op != token.ADD {
			return nil, fmt.Errorf("cannot apply %s to %s and %s", op, typeName(left), typeName(right))
		}
		return ls + rs, nil
	}

	li, lInt := left.(int64)
	ri, rInt := right.(int64)
	if lInt && rInt {
		switch op {
		case token.ADD:
			return li + ri, nil
		case token.SUB:
			return li - ri, nil
		case token.MUL:
			return li * ri, nil
		case token.QUO:
			if ri == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return li / ri, nil
		case token.REM:
			if ri == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return li % ri, nil
		}
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return nil, fmt.Errorf("cannot apply %s to %s and %s", op, typeName(left), typeName(right))
	}
	switch op {
	case token.ADD:
		return lf + rf, nil
	case token.SUB:
		return lf - rf, nil
	case token.MUL:
		return lf * rf, nil
	case token.QUO:
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return lf / rf, nil
	case token.REM:
		return nil, fmt.Errorf("%% requires integers")
	}
	return nil, fmt.Errorf("unsupported operator %s", op)
}

func evalComparison(op token.Token, left, right interface{}) (interface{}, error) {
	// Equality is defined across the whole value domain
	if op == token.EQL || op == token.NEQ {
		eq := valuesEqual(left, right)
		if op == token.NEQ {
			eq = !eq
		}
		return eq, nil
	}

	// Ordering is defined for numbers and strings
	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return nil, fmt.Errorf("cannot compare %s and %s", typeName(left), typeName(right))
		}
		return orderResult(op, strings.Compare(ls, rs)), nil
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return nil, fmt.Errorf("cannot compare %s and %s", typeName(left), typeName(right))
	}
	switch {
	case lf < rf:
		return orderResult(op, -1), nil
	case lf > rf:
		return orderResult(op, 1), nil
	default:
		return orderResult(op, 0), nil
	}
}

func orderResult(op token.Token, cmp int) bool {
	switch op {
	case token.LSS:
		return cmp < 0
	case token.LEQ:
		return cmp <= 0
	case token.GTR:
		return cmp > 0
	case token.GEQ:
		return cmp >= 0
	}
	return false
}

func valuesEqual(left, right interface{}) bool {
	// Numeric equality crosses the int/float divide: 1 == 1.0
	if lf, ok := toFloat(left); ok {
		if rf, ok := toFloat(right); ok {
			return lf == rf
		}
		return false
	}
	if llist, ok := left.([]interface{}); ok {
		rlist, ok := right.([]interface{})
		if !ok || len(llist) != len(rlist) {
			return false
		}
		for i := range llist {
			if !valuesEqual(llist[i], rlist[i]) {
				return false
			}
		}
		return true
	}
	return left == right
}

func evalCall(ns *Namespace, e *ast.CallExpr) (interface{}, error) {
	ident, ok := e.Fun.(*ast.Ident)
	if !ok {
		return nil, fmt.Errorf("only named functions can be called")
	}

	fnValue, found := ns.Lookup(ident.Name)
	if !found {
		return nil, fmt.Errorf("undefined function %q", ident.Name)
	}
	fn, ok := fnValue.(Func)
	if !ok {
		return nil, fmt.Errorf("%q is not callable", ident.Name)
	}

	args := make([]interface{}, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg, err := evalExpr(ns, argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	result, err := fn(args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ident.Name, err)
	}
	return result, nil
}

func evalIndex(ns *Namespace, e *ast.IndexExpr) (interface{}, error) {
	container, err := evalExpr(ns, e.X)
	if err != nil {
		return nil, err
	}
	indexValue, err := evalExpr(ns, e.Index)
	if err != nil {
		return nil, err
	}
	idx, ok := indexValue.(int64)
	if !ok {
		return nil, fmt.Errorf("index must be an integer, got %s", typeName(indexValue))
	}

	switch c := container.(type) {
	case string:
		runes := []rune(c)
		if idx < 0 || idx >= int64(len(runes)) {
			return nil, fmt.Errorf("string index %d out of range [0, %d)", idx, len(runes))
		}
		return string(runes[idx]), nil
	case []interface{}:
		if idx < 0 || idx >= int64(len(c)) {
			return nil, fmt.Errorf("list index %d out of range [0, %d)", idx, len(c))
		}
		return c[idx], nil
	default:
		return nil, fmt.Errorf("cannot index %s", typeName(container))
	}
}

// toFloat widens numeric values for mixed arithmetic and comparisons
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// typeName names a value's type the way error messages show it
func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "nil"
	case int64:
		return "integer"
	case float64:
		return "float"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []interface{}:
		return "list"
	case Func:
		return "function"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Package calc provides toy arithmetic helpers.
//
// Helpers compose with bindings:
//
//	>>> base := 10
//	>>> base * 2
//	20
package calc

// Double returns twice the argument.
//
//	>>> 2 * 21
//	42
func Double(n int) int {
	return 2 * n
}

// Halve returns half of the argument, rounding toward zero.
//
//	>>> 7 / 2
//	3
func Halve(n int) int {
	return n / 2
}

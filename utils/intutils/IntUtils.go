// Package intutils provides utilities for working with ints
package intutils

// Prod returns the product of all ints in a list. The product of an
// empty list is 1.
func Prod(ints ...int) int {
	prod := 1
	for _, val := range ints {
		prod *= val
	}
	return prod
}

//go:build gadebug

package tsp

import "fmt"

// assertPermutation panics when an operator breaks the permutation invariant
func assertPermutation(tour Tour, n int) {
	if err := Validate(tour, n); err != nil {
		panic(fmt.Sprintf("tsp: invariant violated: %v (tour %v)", err, tour))
	}
}

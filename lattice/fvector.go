package lattice

// minFVector computes the minimum possible f-vector of an n-dimensional
// polytope (the n-simplex, which has the fewest faces of any bounded
// n-polytope), indexed by level 0 (vertices) through n (the polytope
// itself), grounded on LatticeGraph.py's `_minimum_f_vector` (a binomial
// running product over C(n+1, j)).
func minFVector(n int) []int {
	out := make([]int, n+1)
	for level := 0; level <= n; level++ {
		out[level] = int(binomial(n+1, level+1))
	}
	return out
}

func binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 0; i < k; i++ {
		result = result * int64(n-i) / int64(i+1)
	}
	return result
}

// modifiedEulerCharacteristic folds the f-vector (prefixed with the
// empty face's count of 1, at index -1 in the original) the same way
// LatticeGraph.py's modified_euler_characteristic does:
// reduce(lambda x,y: -x+y, [1]+f_vector).
func modifiedEulerCharacteristic(fVector []int) int {
	acc := 1
	for _, y := range fVector {
		acc = -acc + y
	}
	return acc
}

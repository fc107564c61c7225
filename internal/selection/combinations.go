package selection

import "math"

// Binomial returns C(n, k), saturating at math.MaxUint64.
func Binomial(n, k int) uint64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}

	result := uint64(1)
	for i := 1; i <= k; i++ {
		// result * (n-k+i) / i stays integral at every step
		factor := uint64(n - k + i)
		if result > math.MaxUint64/factor {
			return math.MaxUint64
		}
		result = result * factor / uint64(i)
	}
	return result
}

// combinations walks every k-subset of indices 0..n-1 in lexicographic order, calling fn
// with the current index slice (valid only during the call). Walking stops when fn returns
// false. k == 0 yields one empty combination; k > n yields none.
func combinations(n, k int, fn func(idx []int) bool) {
	if k < 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return
		}

		// rightmost position that can still advance
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

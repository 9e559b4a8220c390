// Package numeric holds the overflow-safe primitives every distribution model
// is built from. Factorial and binomial terms are always accumulated as sums of
// logarithms; n! itself overflows float64 past n = 170.
package numeric

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mathext"
)

// MinLogProb is the smallest log-probability whose exponential is still a
// representable (subnormal) float64. Anything below it is treated as exactly 0.
const MinLogProb = -745.0

// logFactorialTableSize bounds the cached prefix sums; larger n continue the
// sum from the last cached entry.
const logFactorialTableSize = 1 << 16

// logFactorials[n] holds ln(n!) as a running sum of ln i. It grows on demand,
// so sweeping k = 0..K costs O(K) in total rather than O(K²).
var logFactorials = struct {
	sync.RWMutex
	table []float64
}{table: []float64{0, 0}}

// LogFactorial returns ln(n!) as Σ ln i for i = 2..n.
func LogFactorial(n uint64) float64 {
	if n < logFactorialTableSize {
		return cachedLogFactorial(int(n))
	}
	last := uint64(logFactorialTableSize - 1)
	sum := cachedLogFactorial(int(last))
	for i := last + 1; i <= n; i++ {
		sum += math.Log(float64(i))
	}
	return sum
}

func cachedLogFactorial(n int) float64 {
	logFactorials.RLock()
	if n < len(logFactorials.table) {
		v := logFactorials.table[n]
		logFactorials.RUnlock()
		return v
	}
	logFactorials.RUnlock()

	logFactorials.Lock()
	defer logFactorials.Unlock()
	t := logFactorials.table
	for i := len(t); i <= n; i++ {
		t = append(t, t[i-1]+math.Log(float64(i)))
	}
	logFactorials.table = t
	return t[n]
}

// LogCombination returns ln C(n, k). It is 0 for k == 0 or k == n and panics
// for k > n, which callers must rule out beforehand.
func LogCombination(n, k uint64) float64 {
	if k > n {
		panic(fmt.Sprintf("numeric: LogCombination(%d, %d) with k > n", n, k))
	}
	if k == 0 || k == n {
		return 0
	}
	// C(n, k) == C(n, n-k); the shorter loop is the same sum.
	if n-k < k {
		k = n - k
	}
	sum := 0.0
	for i := uint64(1); i <= k; i++ {
		sum += math.Log(float64(n-k+i)) - math.Log(float64(i))
	}
	return sum
}

// Gamma is Γ(x) for real x, accurate at half-integers.
func Gamma(x float64) float64 {
	return math.Gamma(x)
}

// LogGamma returns ln|Γ(x)|.
func LogGamma(x float64) float64 {
	lg, _ := math.Lgamma(x)
	return lg
}

// LogBeta returns ln B(a, b) = ln Γ(a) + ln Γ(b) - ln Γ(a+b).
func LogBeta(a, b float64) float64 {
	return mathext.Lbeta(a, b)
}

// ExpProb converts a log-probability back to a probability. Very negative,
// -Inf or NaN inputs yield exactly 0 instead of propagating NaN.
func ExpProb(logP float64) float64 {
	if math.IsNaN(logP) || logP < MinLogProb {
		return 0
	}
	return math.Exp(logP)
}

// XLogY returns x*ln(y) with the convention 0*ln(0) = 0, so p^0 terms
// contribute nothing even when p is 0.
func XLogY(x, y float64) float64 {
	if x == 0 {
		return 0
	}
	return x * math.Log(y)
}

// XLog1pY returns x*ln(1+y) with the same 0*ln(0) convention as XLogY.
func XLog1pY(x, y float64) float64 {
	if x == 0 {
		return 0
	}
	return x * math.Log1p(y)
}

// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

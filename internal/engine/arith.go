package engine

import (
	"context"
	"math/big"

	"github.com/Veraticus/number-classifier/internal/model"
)

// checkInterval is how many loop iterations pass between context checks.
const checkInterval = 1 << 14

// maxArmstrongDigits bounds the digit count of any Armstrong number:
// for k >= 61, k*9^k < 10^(k-1), so the digit-power sum cannot reach |n|.
const maxArmstrongDigits = 60

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// ticker rate-limits context checks inside the trial-division loops.
type ticker struct {
	ctx   context.Context
	count uint
}

func newTicker(ctx context.Context) *ticker {
	return &ticker{ctx: ctx}
}

func (t *ticker) tick() error {
	t.count++
	if t.count%checkInterval != 0 {
		return nil
	}
	return t.ctx.Err()
}

// parity uses Euclidean modulo, so negative numbers never yield -1.
func parity(n *big.Int) model.Parity {
	if new(big.Int).Mod(n, bigTwo).Sign() == 0 {
		return model.ParityEven
	}
	return model.ParityOdd
}

// absDigits returns the decimal digits of |n|.
func absDigits(n *big.Int) string {
	return new(big.Int).Abs(n).String()
}

func digitSum(digits string) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i] - '0')
	}
	return sum
}

// isArmstrong reports whether the digits, each raised to the digit count,
// sum to the number they spell.
func isArmstrong(digits string) bool {
	k := len(digits)
	if k > maxArmstrongDigits {
		return false
	}

	exp := big.NewInt(int64(k))
	var powers [10]*big.Int
	for d := range powers {
		powers[d] = new(big.Int).Exp(big.NewInt(int64(d)), exp, nil)
	}

	sum := new(big.Int)
	for i := 0; i < k; i++ {
		sum.Add(sum, powers[digits[i]-'0'])
	}

	abs, _ := new(big.Int).SetString(digits, 10)
	return sum.Cmp(abs) == 0
}

// isPrime is trial division up to floor(sqrt(n)). Anything below 2 is not prime.
func isPrime(t *ticker, n *big.Int) (bool, error) {
	if n.Cmp(bigTwo) < 0 {
		return false, nil
	}
	if n.IsInt64() {
		return isPrimeInt64(t, n.Int64())
	}
	return isPrimeBig(t, n)
}

func isPrimeInt64(t *ticker, n int64) (bool, error) {
	if n < 4 {
		return true, nil
	}
	if n%2 == 0 {
		return false, nil
	}
	for i := int64(3); i <= n/i; i += 2 {
		if err := t.tick(); err != nil {
			return false, err
		}
		if n%i == 0 {
			return false, nil
		}
	}
	return true, nil
}

func isPrimeBig(t *ticker, n *big.Int) (bool, error) {
	if n.Bit(0) == 0 {
		return false, nil
	}

	limit := new(big.Int).Sqrt(n)
	q, r := new(big.Int), new(big.Int)
	for i := big.NewInt(3); i.Cmp(limit) <= 0; i.Add(i, bigTwo) {
		if err := t.tick(); err != nil {
			return false, err
		}
		q.QuoRem(n, i, r)
		if r.Sign() == 0 {
			return false, nil
		}
	}
	return true, nil
}

// isPerfect sums the proper divisors of n by trial division. No proper
// divisor exceeds n/2, so the walk stops there; it stops early once the
// running sum passes n. Anything below 1 is not perfect.
func isPerfect(t *ticker, n *big.Int) (bool, error) {
	if n.Sign() <= 0 {
		return false, nil
	}
	if n.IsInt64() {
		return isPerfectInt64(t, n.Int64())
	}
	return isPerfectBig(t, n)
}

func isPerfectInt64(t *ticker, n int64) (bool, error) {
	if n == 1 {
		return false, nil
	}

	// uint64 holds n + n/2 without overflow.
	target := uint64(n)
	sum := uint64(1)
	for i := int64(2); i <= n/2; i++ {
		if err := t.tick(); err != nil {
			return false, err
		}
		if n%i == 0 {
			sum += uint64(i)
			if sum > target {
				return false, nil
			}
		}
	}
	return sum == target, nil
}

func isPerfectBig(t *ticker, n *big.Int) (bool, error) {
	half := new(big.Int).Rsh(n, 1)
	sum := big.NewInt(1)
	q, r := new(big.Int), new(big.Int)
	for i := big.NewInt(2); i.Cmp(half) <= 0; i.Add(i, bigOne) {
		if err := t.tick(); err != nil {
			return false, err
		}
		q.QuoRem(n, i, r)
		if r.Sign() == 0 {
			sum.Add(sum, i)
			if sum.Cmp(n) > 0 {
				return false, nil
			}
		}
	}
	return sum.Cmp(n) == 0, nil
}

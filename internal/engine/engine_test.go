package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Veraticus/number-classifier/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad test literal %q", s)
	return n
}

func TestClassify_Primality(t *testing.T) {
	tests := []struct {
		n    int64
		want bool
	}{
		{-7, false},
		{-5, false},
		{-2, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{7, true},
		{8, false},
		{9, false},
		{25, false},
		{97, true},
		{7919, true},
		{7921, false}, // 89^2
		{1000003, true},
	}

	for _, tt := range tests {
		record := Classify(big.NewInt(tt.n))
		assert.Equal(t, tt.want, record.IsPrime, "is_prime(%d)", tt.n)
	}
}

func TestClassify_Perfection(t *testing.T) {
	tests := []struct {
		n    int64
		want bool
	}{
		{-6, false},
		{0, false},
		{1, false},
		{6, true},
		{10, false},
		{12, false},
		{28, true},
		{496, true},
		{8128, true},
		{8129, false},
		{33550336, true},
	}

	for _, tt := range tests {
		record := Classify(big.NewInt(tt.n))
		assert.Equal(t, tt.want, record.IsPerfect, "is_perfect(%d)", tt.n)
	}
}

func TestClassify_Armstrong(t *testing.T) {
	tests := []struct {
		n    int64
		want bool
	}{
		{0, true},
		{4, true},
		{9, true},
		{10, false},
		{153, true},
		{154, false},
		{370, true},
		{371, true},
		{407, true},
		{9474, true},
		{9475, false},
		{-153, true},
		{-154, false},
	}

	for _, tt := range tests {
		record := Classify(big.NewInt(tt.n))
		assert.Equal(t, tt.want, record.IsArmstrong, "is_armstrong(%d)", tt.n)
	}
}

func TestClassify_ParityAndDigitSum(t *testing.T) {
	tests := []struct {
		n        int64
		parity   model.Parity
		digitSum int
	}{
		{0, model.ParityEven, 0},
		{1, model.ParityOdd, 1},
		{-1, model.ParityOdd, 1},
		{-4, model.ParityEven, 4},
		{-5, model.ParityOdd, 5},
		{371, model.ParityOdd, 11},
		{-42, model.ParityEven, 6},
		{9999, model.ParityOdd, 36},
	}

	for _, tt := range tests {
		record := Classify(big.NewInt(tt.n))
		assert.Equal(t, tt.parity, record.Parity, "parity(%d)", tt.n)
		assert.Equal(t, tt.digitSum, record.DigitSum, "digit_sum(%d)", tt.n)
	}
}

func TestClassify_Properties(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want []model.Property
	}{
		{"armstrong odd", 371, []model.Property{model.PropertyArmstrong, model.PropertyOdd}},
		{"single digits are armstrong", 4, []model.Property{model.PropertyArmstrong, model.PropertyEven}},
		{"zero", 0, []model.Property{model.PropertyArmstrong, model.PropertyEven}},
		{"plain even", 28, []model.Property{model.PropertyEven}},
		{"plain odd", 11, []model.Property{model.PropertyOdd}},
		{"negative armstrong", -153, []model.Property{model.PropertyArmstrong, model.PropertyOdd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Classify(big.NewInt(tt.n))
			assert.Equal(t, tt.want, record.Properties)
		})
	}
}

func TestClassify_ExtendedProperties(t *testing.T) {
	e := NewWithConfig(Config{ExtendedProperties: true})

	tests := []struct {
		n    int64
		want []model.Property
	}{
		{7, []model.Property{model.PropertyArmstrong, model.PropertyOdd, model.PropertyPrime, model.PropertyImperfect}},
		{28, []model.Property{model.PropertyEven, model.PropertyComposite, model.PropertyPerfect}},
		{371, []model.Property{model.PropertyArmstrong, model.PropertyOdd, model.PropertyComposite, model.PropertyImperfect}},
		{-5, []model.Property{model.PropertyArmstrong, model.PropertyOdd, model.PropertyComposite, model.PropertyImperfect}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, e.Classify(big.NewInt(tt.n)).Properties, "properties(%d)", tt.n)
	}
}

func TestClassify_Zero(t *testing.T) {
	record := Classify(big.NewInt(0))

	assert.False(t, record.IsPrime)
	assert.False(t, record.IsPerfect)
	assert.Equal(t, 0, record.DigitSum)
	assert.Equal(t, model.ParityEven, record.Parity)
	assert.Equal(t, 0, record.Number.Sign())
}

func TestClassify_NilIsZero(t *testing.T) {
	assert.Equal(t, Classify(big.NewInt(0)), Classify(nil))
}

func TestClassify_EchoesNumberWithoutAliasing(t *testing.T) {
	n := big.NewInt(371)
	record := Classify(n)

	n.SetInt64(5)
	assert.Equal(t, "371", record.Number.String())
}

func TestClassify_Deterministic(t *testing.T) {
	for _, v := range []int64{-17, 0, 6, 153, 1000003} {
		first := Classify(big.NewInt(v))
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Classify(big.NewInt(v)))
		}
	}
}

func TestClassify_Concurrent(t *testing.T) {
	e := New()
	want := e.Classify(big.NewInt(8128))

	var wg sync.WaitGroup
	results := make([]model.ClassificationRecord, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Classify(big.NewInt(8128))
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestClassify_LargeNumberCheapProperties(t *testing.T) {
	// The largest Armstrong number; far beyond int64.
	digits := "115132219018763992565095597973971522401"
	assert.True(t, isArmstrong(digits))
	assert.False(t, isArmstrong("115132219018763992565095597973971522402"))

	n := bigFromString(t, "-"+digits)
	assert.Equal(t, model.ParityOdd, parity(n))
	assert.Equal(t, digits, absDigits(n))
	assert.Equal(t, 171, digitSum(digits))
}

func TestIsPrime_BeyondInt64(t *testing.T) {
	ctx := context.Background()

	// 2^64 + 1 = 274177 * 67280421310721
	composite := bigFromString(t, "18446744073709551617")
	got, err := isPrime(newTicker(ctx), composite)
	require.NoError(t, err)
	assert.False(t, got)

	even := bigFromString(t, "18446744073709551616")
	got, err = isPrime(newTicker(ctx), even)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestClassifyContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 2^89 - 1 is prime, so trial division runs until the context check.
	n := bigFromString(t, "618970019642690137449562111")
	_, err := New().ClassifyContext(ctx, n)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClassifyContext_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// None of these reach a periodic check inside the divisor loops.
	for _, n := range []int64{-7, 0, 1, 2, 28, 371} {
		record, err := New().ClassifyContext(ctx, big.NewInt(n))
		require.ErrorIs(t, err, context.Canceled, "n=%d", n)
		assert.Nil(t, record.Number)
	}
}

func TestClassifyContext_Deadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Even, so primality is instant; the O(n) perfection walk is what times out.
	n := bigFromString(t, "1180591620717411303424") // 2^70
	_, err := New().ClassifyContext(ctx, n)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClassificationRecord_JSON(t *testing.T) {
	record := Classify(big.NewInt(371))

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, float64(371), decoded["number"])
	assert.Equal(t, false, decoded["is_prime"])
	assert.Equal(t, false, decoded["is_perfect"])
	assert.Equal(t, true, decoded["is_armstrong"])
	assert.Equal(t, "odd", decoded["parity"])
	assert.Equal(t, float64(11), decoded["digit_sum"])
	assert.Equal(t, []any{"armstrong", "odd"}, decoded["properties"])
}

// Package engine implements the number classification engine: parsing
// decimal input and mapping an integer to its arithmetic properties.
//
// The engine is stateless. A single ClassificationEngine may be shared by any
// number of goroutines without synchronization.
//
// Perfection testing sums proper divisors by trial division and is O(n);
// primality is O(√n). Both are fine for demo-scale inputs and grow slow for
// large ones. Use ClassifyContext to bound the work.
package engine

import (
	"context"
	"math/big"

	"github.com/Veraticus/number-classifier/internal/model"
)

// Config holds configuration options for the classification engine.
type Config struct {
	// ExtendedProperties appends prime/composite and perfect/imperfect
	// tags after the parity tag.
	ExtendedProperties bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{}
}

// ClassificationEngine maps integers to classification records.
type ClassificationEngine struct {
	extended bool
}

// New creates a classification engine with the default configuration.
func New() *ClassificationEngine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a classification engine with custom configuration.
func NewWithConfig(config Config) *ClassificationEngine {
	return &ClassificationEngine{
		extended: config.ExtendedProperties,
	}
}

var defaultEngine = New()

// Classify classifies n with the default engine.
func Classify(n *big.Int) model.ClassificationRecord {
	return defaultEngine.Classify(n)
}

// Classify returns the classification record for n. It never fails.
// A nil n is classified as zero.
func (e *ClassificationEngine) Classify(n *big.Int) model.ClassificationRecord {
	// Background is never cancelled, so the error is always nil.
	record, _ := e.ClassifyContext(context.Background(), n)
	return record
}

// ClassifyContext is Classify with cancellation; the only possible error is
// ctx.Err(). ctx is checked on entry and then once every checkInterval
// (16384) trial divisions, so a call already under way may run that many
// more divisions after cancellation.
func (e *ClassificationEngine) ClassifyContext(ctx context.Context, n *big.Int) (model.ClassificationRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.ClassificationRecord{}, err
	}
	if n == nil {
		n = new(big.Int)
	}
	n = new(big.Int).Set(n)

	digits := absDigits(n)
	record := model.ClassificationRecord{
		Number:      n,
		Parity:      parity(n),
		DigitSum:    digitSum(digits),
		IsArmstrong: isArmstrong(digits),
	}

	t := newTicker(ctx)

	var err error
	if record.IsPrime, err = isPrime(t, n); err != nil {
		return model.ClassificationRecord{}, err
	}
	if record.IsPerfect, err = isPerfect(t, n); err != nil {
		return model.ClassificationRecord{}, err
	}

	record.Properties = e.properties(record)
	return record, nil
}

// properties assembles the ordered tag list: armstrong first, then parity.
func (e *ClassificationEngine) properties(record model.ClassificationRecord) []model.Property {
	props := make([]model.Property, 0, 4)
	if record.IsArmstrong {
		props = append(props, model.PropertyArmstrong)
	}

	if record.Parity == model.ParityEven {
		props = append(props, model.PropertyEven)
	} else {
		props = append(props, model.PropertyOdd)
	}

	if !e.extended {
		return props
	}

	if record.IsPrime {
		props = append(props, model.PropertyPrime)
	} else {
		props = append(props, model.PropertyComposite)
	}
	if record.IsPerfect {
		props = append(props, model.PropertyPerfect)
	} else {
		props = append(props, model.PropertyImperfect)
	}
	return props
}

// IsArmstrong reports whether n is an Armstrong number without running the
// expensive divisor checks.
func IsArmstrong(n *big.Int) bool {
	if n == nil {
		n = new(big.Int)
	}
	return isArmstrong(absDigits(n))
}

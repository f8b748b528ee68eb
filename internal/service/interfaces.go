// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"math/big"

	"github.com/Veraticus/number-classifier/internal/model"
)

// Classifier maps an integer to its classification record.
type Classifier interface {
	Classify(n *big.Int) model.ClassificationRecord
	ClassifyContext(ctx context.Context, n *big.Int) (model.ClassificationRecord, error)
}

// FactFetcher supplies a trivia sentence about a number.
// Implementations must not cache or retry; callers substitute a placeholder
// when Fact returns an error.
type FactFetcher interface {
	Fact(ctx context.Context, n *big.Int) (string, error)
}

// FactFetcherFunc adapts a function to the FactFetcher interface.
type FactFetcherFunc func(ctx context.Context, n *big.Int) (string, error)

// Fact calls f(ctx, n).
func (f FactFetcherFunc) Fact(ctx context.Context, n *big.Int) (string, error) {
	return f(ctx, n)
}

// FactPlaceholder is returned to callers when no fact could be fetched.
const FactPlaceholder = "No fun fact available"

package facts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Veraticus/number-classifier/internal/engine"
)

// StaticFetcher renders a canned fact without any network access.
type StaticFetcher struct{}

// Fact implements service.FactFetcher.
func (StaticFetcher) Fact(_ context.Context, n *big.Int) (string, error) {
	if engine.IsArmstrong(n) {
		return fmt.Sprintf("%s is an Armstrong number!", n.String()), nil
	}
	return fmt.Sprintf("%s is an interesting number!", n.String()), nil
}

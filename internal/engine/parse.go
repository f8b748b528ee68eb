package engine

import (
	"fmt"
	"math/big"
	"regexp"

	"github.com/Veraticus/number-classifier/internal/common"
)

// integerPattern matches an optionally negative run of decimal digits.
var integerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// maxQuotedInput bounds how much of a rejected input is echoed in error messages.
const maxQuotedInput = 32

// ParseError reports input that is not an optionally signed decimal integer.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	input := e.Input
	if len(input) > maxQuotedInput {
		input = input[:maxQuotedInput] + "..."
	}
	return fmt.Sprintf("%v: %q", common.ErrInvalidFormat, input)
}

func (e *ParseError) Unwrap() error {
	return common.ErrInvalidFormat
}

// Parse converts input into an arbitrary-precision integer. It accepts an
// optional leading '-' followed by one or more decimal digits and nothing
// else: no '+', no whitespace, no decimal point. There is no magnitude limit.
func Parse(input string) (*big.Int, error) {
	if !integerPattern.MatchString(input) {
		return nil, &ParseError{Input: input}
	}

	n, ok := new(big.Int).SetString(input, 10)
	if !ok {
		return nil, &ParseError{Input: input}
	}
	return n, nil
}

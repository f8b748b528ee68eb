// Package model defines the core domain models used throughout the application.
package model

import (
	"math/big"
	"slices"
)

// Parity indicates whether a number is divisible by two.
type Parity string

// Parity constants.
const (
	ParityEven Parity = "even"
	ParityOdd  Parity = "odd"
)

// Property is a tag in a record's ordered property list.
type Property string

// Property tags. Armstrong and the parity tags are always considered;
// the prime/composite and perfect/imperfect tags are only emitted by
// engines built with extended properties.
const (
	PropertyArmstrong Property = "armstrong"
	PropertyEven      Property = "even"
	PropertyOdd       Property = "odd"
	PropertyPrime     Property = "prime"
	PropertyComposite Property = "composite"
	PropertyPerfect   Property = "perfect"
	PropertyImperfect Property = "imperfect"
)

// KnownProperties lists every tag a record may carry, in emission order.
var KnownProperties = []Property{
	PropertyArmstrong,
	PropertyEven,
	PropertyOdd,
	PropertyPrime,
	PropertyComposite,
	PropertyPerfect,
	PropertyImperfect,
}

// ParseProperty returns the Property named by s.
func ParseProperty(s string) (Property, bool) {
	p := Property(s)
	if slices.Contains(KnownProperties, p) {
		return p, true
	}
	return "", false
}

// ClassificationRecord holds the arithmetic properties of a single integer.
// Records are produced by the engine and must be treated as read-only.
type ClassificationRecord struct {
	Number      *big.Int   `json:"number"`
	Parity      Parity     `json:"parity"`
	Properties  []Property `json:"properties"`
	DigitSum    int        `json:"digit_sum"`
	IsPrime     bool       `json:"is_prime"`
	IsPerfect   bool       `json:"is_perfect"`
	IsArmstrong bool       `json:"is_armstrong"`
}

// HasProperty reports whether p appears in the record's property list,
// or, for the extended tags, whether the corresponding flag says so.
func (r ClassificationRecord) HasProperty(p Property) bool {
	switch p {
	case PropertyPrime:
		return r.IsPrime
	case PropertyComposite:
		return !r.IsPrime
	case PropertyPerfect:
		return r.IsPerfect
	case PropertyImperfect:
		return !r.IsPerfect
	case PropertyArmstrong:
		return r.IsArmstrong
	case PropertyEven:
		return r.Parity == ParityEven
	case PropertyOdd:
		return r.Parity == ParityOdd
	default:
		return slices.Contains(r.Properties, p)
	}
}

// PropertyStrings returns the property list as plain strings.
func (r ClassificationRecord) PropertyStrings() []string {
	out := make([]string, len(r.Properties))
	for i, p := range r.Properties {
		out[i] = string(p)
	}
	return out
}

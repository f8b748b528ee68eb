// Package facts provides fun fact providers for classified numbers.
// The numbersapi provider queries the public Numbers API over HTTP; the
// static provider renders a canned sentence offline. Providers never cache
// or retry: a failed fetch is reported to the caller, which substitutes
// service.FactPlaceholder.
package facts

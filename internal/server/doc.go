// Package server exposes the classification engine over HTTP.
//
// # Endpoints
//
//   - GET /                                  - Welcome message and usage
//   - GET /api/classify-number?number=<num>  - Classify an integer
//   - GET /health                            - Health check
//
// A successful classification returns the number, is_prime, is_perfect,
// properties, digit_sum and fun_fact. Input that is not an optionally
// negative run of decimal digits yields 400 with {"number", "error": true,
// "message": "Invalid input"}. A failed fun fact fetch never fails the
// request; the fun_fact field falls back to service.FactPlaceholder.
//
// # Middleware
//
//   - Request IDs (X-Request-ID)
//   - Panic recovery
//   - Structured request logging
//   - CORS with an origin allowlist
//   - Per-client token bucket rate limiting
package server

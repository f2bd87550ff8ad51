// Package generator exposes the public contracts of the value synthesizer:
// the Generator interface, its options and configuration, the explicit random
// Source every call draws from, and the error values callers can match.
//
// The dispatcher itself lives under internal/generator; construct it through
// fixturegen.NewGenerator.
package generator

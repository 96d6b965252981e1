// Package obslog builds the shared zap logger used across the
// matcher, inference engine, and attention bank, the same way the
// teacher's main.go constructs a zap.NewProduction logger — except
// this package has no main() to live in, so components take a
// *zap.Logger constructed here as a dependency.
package obslog

import "go.uber.org/zap"

// New builds a production-profile zap logger. debug=true switches to
// zap's development profile (human-readable, colorized level,
// stacktraces on warn).
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Nop returns a logger that discards everything, for callers (tests,
// library consumers who don't want logging) that don't want to wire a
// real sink.
func Nop() *zap.Logger {
	return zap.NewNop()
}

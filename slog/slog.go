// Package slog provides logging decorators for sieve services.
package slog

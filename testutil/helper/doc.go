// Package helper provides shared test utilities, most notably a
// slog.Handler spy for asserting on log output.
package helper

// Package scenario resolves market configurations into price functions and a
// solving method, and runs them singly or in YAML-defined batches.
package scenario

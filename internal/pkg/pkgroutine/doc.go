// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, logs panics
// and runs periodic housekeeping (Every) until the root context ends.
package pkgroutine

// Package pkgrouter wraps HTTP routing and common middleware used by the service.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON and HTML encoding, error mapping, logging, recovery, request
// metrics, and correlation ID propagation.
package pkgrouter

// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// Handlers map an *Error to an HTTP status through StatusCode; Details carries
// per-item context (for example each rejected upload file) to the response body.
package pkgerror

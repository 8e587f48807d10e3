// Package pkgsession gives every browser a stable dashboard session id.
//
// The id lives in a signed gorilla/sessions cookie; the middleware copies it
// into the request context where handlers read it with ID.
package pkgsession

package pkguid

// StringID generates unique string identifiers (session, event and
// correlation ids).
type StringID interface {
	Generate() string
}

// NumberID generates unique, roughly time ordered numeric identifiers
// (upload batch ids).
type NumberID interface {
	Generate() int64
}

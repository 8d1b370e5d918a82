package models

// Topic is a named channel users subscribe to. The membership relation is
// not held on the struct: it lives in the topic_subscribers join table and
// is always a duplicate-free set by construction.
type Topic struct {
	ID   int64
	Name string
}

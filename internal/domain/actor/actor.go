package actor

// Actor identifies who performs an operation. It is resolved once at the
// HTTP boundary from request headers and passed down by value; the core
// never re-derives identity.
type Actor struct {
	ID        string // 32-char lowercase hex user id
	StoreID   string // optional: store the actor operates
	CompanyID string // optional: owning company (PT)
}

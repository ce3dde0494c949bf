package backdrop

// session holds the authentication state for one site. It is owned by the
// Client and mutated only by Login and Logout; the request pipeline reads
// it under the client's lock. Token is the raw "name=value" form of the
// session cookie.
type session struct {
	address       Address
	token         string
	authenticated bool
}

package auth

// Identity is the resolved user behind a session. It contains facts
// only, no decisions; the credential store owns and mutates it.
type Identity struct {
	ID       int64  // stable user identifier, references users.id
	Username string // display username
}

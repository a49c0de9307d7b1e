// Package auth holds the claimed identity carried by a session and the two
// authorization rules every protected route applies: self-only and owner-only.
package auth

import "errors"

var (
	ErrUnauthenticated = errors.New("login required")
	ErrForbidden       = errors.New("access denied")
)

// Identity is the username a session currently claims. The zero value is an
// anonymous caller.
type Identity struct {
	Username string
}

func Anonymous() Identity {
	return Identity{}
}

func (i Identity) IsAnonymous() bool {
	return i.Username == ""
}

// AuthorizeSelf permits a user-scoped route only when the caller is the
// user named by the path.
func AuthorizeSelf(id Identity, username string) error {
	if id.IsAnonymous() {
		return ErrUnauthenticated
	}
	if id.Username != username {
		return ErrForbidden
	}
	return nil
}

// AuthorizeOwner permits a note-scoped route only when the caller owns the
// note. The note must already have been found.
func AuthorizeOwner(id Identity, ownerUsername string) error {
	return AuthorizeSelf(id, ownerUsername)
}

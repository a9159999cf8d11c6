package auth

import "github.com/google/uuid"

// NewToken returns a fresh random (version 4) UUID string used for session
// and registration token ids.
func NewToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ParseToken validates a client-supplied token and returns its canonical
// form. ok is false for anything that is not a UUID.
func ParseToken(s string) (canonical string, ok bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

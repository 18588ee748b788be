package domain

import "context"

// Credential pairs a person with their bcrypt password hash. Credentials live
// outside the Person aggregate so the scoring core never sees secrets.
type Credential struct {
	PersonID     PersonID
	Email        string
	PasswordHash string
}

// CredentialStore retrieves login credentials. This abstraction allows the
// file-backed store to be swapped for a database later.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*Credential, error)
}

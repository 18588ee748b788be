package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
	"gopkg.in/yaml.v3"
)

// credentialConfig is the YAML document holding login credentials, keyed by
// email.
type credentialConfig struct {
	Credentials map[string]credentialData `yaml:"credentials"`
}

type credentialData struct {
	PersonID     string `yaml:"person_id"`
	PasswordHash string `yaml:"password_hash"`
}

// FileCredentialStore implements domain.CredentialStore from a local YAML
// file, kept fully in memory for O(1) lookups.
type FileCredentialStore struct {
	credentials map[string]domain.Credential
}

// NewFileCredentialStore loads and validates the credential file.
func NewFileCredentialStore(filePath string) (*FileCredentialStore, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credential file %s: %w", filePath, err)
	}

	var config credentialConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential file: %w", err)
	}

	if len(config.Credentials) == 0 {
		return nil, fmt.Errorf("%w: no credentials defined", apperrors.ErrInvalidInput)
	}

	credentials := make(map[string]domain.Credential, len(config.Credentials))
	for email, data := range config.Credentials {
		email = strings.ToLower(strings.TrimSpace(email))
		if err := validateCredentialData(email, data); err != nil {
			return nil, fmt.Errorf("invalid credential for %s: %w", email, err)
		}

		personID, err := domain.PersonIDFromString(data.PersonID)
		if err != nil {
			return nil, fmt.Errorf("invalid credential for %s: %w", email, err)
		}

		credentials[email] = domain.Credential{
			PersonID:     personID,
			Email:        email,
			PasswordHash: data.PasswordHash,
		}
	}

	return &FileCredentialStore{credentials: credentials}, nil
}

// NewStaticCredentialStore builds a store from already-constructed
// credentials. Intended for tests and dev wiring.
func NewStaticCredentialStore(creds ...domain.Credential) *FileCredentialStore {
	credentials := make(map[string]domain.Credential, len(creds))
	for _, c := range creds {
		credentials[strings.ToLower(c.Email)] = c
	}
	return &FileCredentialStore{credentials: credentials}
}

// FindByEmail looks up a credential. Missing emails surface as ErrNotFound;
// the auth service masks that into a generic authentication failure.
func (s *FileCredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	cred, exists := s.credentials[strings.ToLower(strings.TrimSpace(email))]
	if !exists {
		return nil, fmt.Errorf("%w: no credential for email", apperrors.ErrNotFound)
	}

	copy := cred
	return &copy, nil
}

func validateCredentialData(email string, data credentialData) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if data.PersonID == "" {
		return fmt.Errorf("person_id cannot be empty")
	}
	if data.PasswordHash == "" {
		return fmt.Errorf("password_hash cannot be empty")
	}

	// bcrypt hashes start with $2a$, $2b$ or $2y$ and are 60 bytes.
	if len(data.PasswordHash) < 60 || (data.PasswordHash[:4] != "$2a$" &&
		data.PasswordHash[:4] != "$2b$" && data.PasswordHash[:4] != "$2y$") {
		return fmt.Errorf("password_hash must be a valid bcrypt hash")
	}
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
)

func writeCredentialFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewFileCredentialStore(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	personID := domain.NewPersonID()

	path := writeCredentialFile(t, fmt.Sprintf(`credentials:
  Alice@Example.com:
    person_id: %s
    password_hash: %q
`, personID, hash))

	store, err := NewFileCredentialStore(path)
	require.NoError(t, err)

	t.Run("lookup ignores case", func(t *testing.T) {
		cred, err := store.FindByEmail(context.Background(), "ALICE@example.COM")
		require.NoError(t, err)
		assert.Equal(t, personID, cred.PersonID)
		assert.Equal(t, string(hash), cred.PasswordHash)
	})

	t.Run("missing email is not found", func(t *testing.T) {
		_, err := store.FindByEmail(context.Background(), "bob@example.com")
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestNewFileCredentialStore_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileCredentialStore(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		path := writeCredentialFile(t, "credentials: {}\n")
		_, err := NewFileCredentialStore(path)
		require.Error(t, err)
	})

	t.Run("non-bcrypt hash rejected", func(t *testing.T) {
		path := writeCredentialFile(t, fmt.Sprintf(`credentials:
  alice@example.com:
    person_id: %s
    password_hash: plaintext-password
`, domain.NewPersonID()))
		_, err := NewFileCredentialStore(path)
		require.Error(t, err)
	})

	t.Run("bad person id rejected", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("x"), bcrypt.MinCost)
		require.NoError(t, err)
		path := writeCredentialFile(t, fmt.Sprintf(`credentials:
  alice@example.com:
    person_id: not-a-uuid
    password_hash: %q
`, hash))
		_, err = NewFileCredentialStore(path)
		require.Error(t, err)
	})
}

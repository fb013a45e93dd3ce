package auth // package auth implements credential verification and session tokens

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// hashedPrefix marks a stored credential that has already been migrated to
// bcrypt.  Every bcrypt output starts with "$2" ($2a$/$2b$/$2y$); anything
// else in the password column is treated as a legacy plaintext secret.
const hashedPrefix = "$2"

// CredentialStore persists an upgraded credential representation for a
// principal.  Both the user and the customer repositories satisfy it.
type CredentialStore interface {
	UpdatePassword(ctx context.Context, id uint64, hash string) error
}

// Verifier checks presented passwords against stored representations and
// lazily migrates legacy plaintext rows to bcrypt on the first successful
// login.  It holds only the bcrypt cost; the store is passed per call so a
// single Verifier serves both principal kinds.
type Verifier struct {
	cost int
}

func NewVerifier(cost int) *Verifier { return &Verifier{cost: cost} }

// Hash produces the representation stored on registration and password
// change.  Write paths must never store plaintext.
func (v *Verifier) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), v.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares presented against the stored representation of principal
// id. It returns whether the password matched and the representation the
// caller should carry in memory afterwards (the fresh hash when a migration
// happened, the stored value otherwise).
//
// Hashed representations are compared with bcrypt and cause no writes.
// Legacy representations are compared by equality; on a match the password
// is re-hashed and written back through store, and success is reported from
// the original equality comparison, not from the new hash.  An empty stored
// representation fails closed.
//
// Two concurrent logins for the same legacy row may both run the upgrade.
// Both writers encode the same presented secret, so the writes are
// idempotent and the row can never revert to plaintext; no locking is done.
func (v *Verifier) Verify(ctx context.Context, store CredentialStore, id uint64, stored, presented string) (bool, string, error) {
	if stored == "" {
		return false, stored, nil
	}
	if strings.HasPrefix(stored, hashedPrefix) {
		ok := bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
		return ok, stored, nil
	}
	if presented != stored {
		return false, stored, nil
	}
	hash, err := v.Hash(presented)
	if err != nil {
		return false, stored, err
	}
	if err := store.UpdatePassword(ctx, id, hash); err != nil {
		return false, stored, err
	}
	return true, hash, nil
}

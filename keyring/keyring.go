package keyring

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/wojtekmach/plug-signature/httpsig"
)

var (
	// ErrDuplicateKeyID is returned when adding a verifier whose key id
	// is already registered.
	ErrDuplicateKeyID = errors.New("keyring: duplicate key id")

	// ErrUnknownKeyID is returned when no verifier is registered for a
	// key id.
	ErrUnknownKeyID = errors.New("keyring: unknown key id")

	// ErrMissingKeyMaterial is returned for a key file entry that has
	// neither a public_key nor a secret.
	ErrMissingKeyMaterial = errors.New("keyring: key entry has neither public_key nor secret")

	// ErrInvalidPEM is returned when key data contains no PEM block.
	ErrInvalidPEM = errors.New("keyring: no PEM block found")

	// ErrUnsupportedKeyType is returned for PEM blocks of an unsupported
	// type.
	ErrUnsupportedKeyType = errors.New("keyring: unsupported key type")
)

// Keyring is a concurrency-safe registry of verifiers indexed by key id.
type Keyring struct {
	mu        sync.RWMutex
	verifiers map[string]httpsig.Verifier
}

// New returns an empty Keyring.
func New() *Keyring {
	return &Keyring{
		verifiers: make(map[string]httpsig.Verifier),
	}
}

// Add registers a verifier under its key id.
func (k *Keyring) Add(v httpsig.Verifier) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	id := v.KeyID()
	if _, ok := k.verifiers[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKeyID, id)
	}

	k.verifiers[id] = v

	return nil
}

// Verifier returns the verifier registered under the given key id.
func (k *Keyring) Verifier(id string) (httpsig.Verifier, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	v, ok := k.verifiers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeyID, id)
	}

	return v, nil
}

// IDs returns the registered key ids in sorted order.
func (k *Keyring) IDs() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	ids := make([]string, 0, len(k.verifiers))
	for id := range k.verifiers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// Resolver returns a KeyResolver that resolves signatures against the
// keyring by key id.
func (k *Keyring) Resolver() httpsig.KeyResolver {
	return func(r *http.Request, keyID string, alg httpsig.Algorithm) (httpsig.Verifier, error) {
		return k.Verifier(keyID)
	}
}

package keyring

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/wojtekmach/plug-signature/httpsig"
)

// keyFile is the YAML document holding key entries.
type keyFile struct {
	Keys []keyEntry `yaml:"keys"`
}

// keyEntry describes one verification key. PublicKey holds a PEM-encoded
// public key for the asymmetric algorithms; Secret holds a base64-encoded
// shared secret for hmac-sha256.
type keyEntry struct {
	ID        string `yaml:"id"`
	Algorithm string `yaml:"algorithm"`
	PublicKey string `yaml:"public_key"`
	Secret    string `yaml:"secret"`
}

// Load reads a YAML key file and returns a keyring with one verifier per
// entry. Entries without an id get a random UUID.
func Load(r io.Reader) (*Keyring, error) {
	var file keyFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("keyring: parse key file: %w", err)
	}

	ring := New()

	for i, entry := range file.Keys {
		v, err := entry.verifier()
		if err != nil {
			return nil, fmt.Errorf("%w (entry %d)", err, i)
		}

		if err := ring.Add(v); err != nil {
			return nil, err
		}
	}

	return ring, nil
}

// LoadFile reads the YAML key file at path. See Load.
func LoadFile(path string) (*Keyring, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

func (e keyEntry) verifier() (httpsig.Verifier, error) {
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}

	alg := httpsig.Algorithm(e.Algorithm)

	switch {
	case e.Secret != "":
		secret, err := base64.StdEncoding.DecodeString(e.Secret)
		if err != nil {
			return nil, fmt.Errorf("keyring: decode secret of key %q: %w", id, err)
		}

		return httpsig.NewVerifier(alg, id, secret)

	case e.PublicKey != "":
		key, err := ParsePublicKey([]byte(e.PublicKey))
		if err != nil {
			return nil, err
		}

		return httpsig.NewVerifier(alg, id, key)

	default:
		return nil, fmt.Errorf("%w: %s", ErrMissingKeyMaterial, id)
	}
}

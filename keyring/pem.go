package keyring

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// ParsePublicKey parses a PEM-encoded public key. PKIX "PUBLIC KEY" and
// PKCS#1 "RSA PUBLIC KEY" blocks are supported.
func ParsePublicKey(data []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEM
	}

	switch block.Type {
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("keyring: parse public key: %w", err)
		}

		return key, nil

	case "RSA PUBLIC KEY":
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("keyring: parse rsa public key: %w", err)
		}

		return key, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyType, block.Type)
	}
}

// ParsePrivateKey parses a PEM-encoded private key. PKCS#8 "PRIVATE KEY",
// PKCS#1 "RSA PRIVATE KEY" and SEC1 "EC PRIVATE KEY" blocks are
// supported.
func ParsePrivateKey(data []byte) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEM
	}

	switch block.Type {
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("keyring: parse private key: %w", err)
		}

		return key, nil

	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("keyring: parse rsa private key: %w", err)
		}

		return key, nil

	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("keyring: parse ec private key: %w", err)
		}

		return key, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyType, block.Type)
	}
}

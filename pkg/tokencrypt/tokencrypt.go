// Package tokencrypt cifra el token del backend antes de guardarlo en la sesión.
// NaCl secretbox (XSalsa20-Poly1305) con clave derivada por HKDF-SHA256.
package tokencrypt

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
	hkdfInfo  = "farmacia-portal/session-token/v1"
)

// ErrDecrypt el contenido no corresponde a la clave o fue alterado.
var ErrDecrypt = errors.New("tokencrypt: no se pudo descifrar")

// Cipher cifra y descifra tokens con una clave fija.
type Cipher struct {
	key [keySize]byte
}

// New deriva la clave a partir del secreto de configuración.
func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("tokencrypt: secreto vacío")
	}
	c := &Cipher{}
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, c.key[:]); err != nil {
		return nil, fmt.Errorf("tokencrypt: derivar clave: %w", err)
	}
	return c, nil
}

// Seal devuelve nonce || caja cifrada.
func (c *Cipher) Seal(plaintext string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("tokencrypt: nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key), nil
}

// Open revierte Seal.
func (c *Cipher) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(out), nil
}

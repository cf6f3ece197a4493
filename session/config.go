package session

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/athanorlabs/go-uecc/ec25519"
)

// CipherSuite selects the AEAD that seals message bodies.
type CipherSuite int

const (
	_ CipherSuite = iota
	ChaCha20Poly1305
	XSalsa20Poly1305
)

var ErrUnknownCipher = errors.New("unknown cipher suite")

func (c CipherSuite) String() string {
	switch c {
	case ChaCha20Poly1305:
		return "chacha20poly1305"
	case XSalsa20Poly1305:
		return "xsalsa20poly1305"
	default:
		return fmt.Sprintf("CipherSuite(%d)", int(c))
	}
}

// ParseCipherSuite maps a cipher name (case-insensitive) to a CipherSuite.
func ParseCipherSuite(s string) (CipherSuite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chacha20poly1305":
		return ChaCha20Poly1305, nil
	case "xsalsa20poly1305", "secretbox":
		return XSalsa20Poly1305, nil
	default:
		return 0, errors.Wrap(ErrUnknownCipher, s)
	}
}

// Config holds the settings a Session is built from.
type Config struct {
	Convention ec25519.Convention
	Cipher     CipherSuite
	// Rand supplies private keys and ephemeral scalars.
	Rand   io.Reader
	Logger hclog.Logger
}

// DefaultConfig returns the Ed25519 convention with ChaCha20-Poly1305,
// crypto/rand and a null logger.
func DefaultConfig() *Config {
	return &Config{
		Convention: ec25519.Ed25519,
		Cipher:     ChaCha20Poly1305,
		Rand:       rand.Reader,
		Logger:     hclog.NewNullLogger(),
	}
}

func (c *Config) validate() error {
	if err := c.Convention.Valid(); err != nil {
		return err
	}

	if c.Cipher != ChaCha20Poly1305 && c.Cipher != XSalsa20Poly1305 {
		return errors.Wrap(ErrUnknownCipher, c.Cipher.String())
	}

	return nil
}

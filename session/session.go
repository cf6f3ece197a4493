// Package session implements public-key encryption and signatures over the
// Curve25519 engine.
//
// A message for public key P is sealed with an ephemeral clamped scalar e:
// R = e*B is sent along, S = e*P is the shared secret, and the AEAD key and
// nonce are derived from S with HKDF-SHA256 salted by R || P. The recipient
// recomputes S = p*R with its private scalar p.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/athanorlabs/go-uecc/curve"
	"github.com/athanorlabs/go-uecc/ec25519"
	"github.com/athanorlabs/go-uecc/types"
)

const (
	keySize = chacha20poly1305.KeySize
	kdfInfo = "uecc session "
)

var (
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrInvalidKey        = errors.New("invalid key")
)

// Session encrypts, decrypts, signs and verifies with one convention and one
// cipher suite. It holds no mutable state and may be shared.
type Session struct {
	curve  *curve.CurveImpl
	cipher CipherSuite
	rand   io.Reader
	logger hclog.Logger
}

// New returns a Session for cfg. Missing Rand and Logger fall back to
// crypto/rand and a null logger.
func New(cfg *Config) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid session config")
	}

	r := cfg.Rand
	if r == nil {
		r = rand.Reader
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	c, err := curve.NewCurve(cfg.Convention, r)
	if err != nil {
		return nil, err
	}

	return &Session{
		curve:  c,
		cipher: cfg.Cipher,
		rand:   r,
		logger: logger.Named("session"),
	}, nil
}

func (s *Session) Convention() ec25519.Convention {
	return s.curve.Convention()
}

func (s *Session) Cipher() CipherSuite {
	return s.cipher
}

// PrivateKey is a clamped secret scalar and its public key.
type PrivateKey struct {
	key    [32]byte
	public *PublicKey
}

// PublicKey is a point in the convention of the session that made it.
type PublicKey struct {
	point types.Point
}

func (k *PrivateKey) Public() *PublicKey {
	return k.public
}

// Bytes returns the 32-byte clamped scalar.
func (k *PrivateKey) Bytes() []byte {
	out := k.key
	return out[:]
}

// Wipe zeroes the secret scalar. The key must not be used afterwards.
func (k *PrivateKey) Wipe() {
	for i := range k.key {
		k.key[i] = 0
	}
}

// Bytes returns the packed public point.
func (k *PublicKey) Bytes() []byte {
	return k.point.Encode()
}

// GenerateKey returns a new key pair from the session's random source.
func (s *Session) GenerateKey() (*PrivateKey, error) {
	var seed [32]byte
	if _, err := io.ReadFull(s.rand, seed[:]); err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}

	return s.PrivateKeyFromBytes(seed[:])
}

// PrivateKeyFromBytes clamps the 32 bytes of b into a private key.
func (s *Session) PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, errors.Wrapf(ErrInvalidKey, "private key must be 32 bytes, got %d", len(b))
	}

	var seed [32]byte
	copy(seed[:], b)

	sc := s.curve.ClampedScalarFromBytes(seed)

	k := &PrivateKey{
		public: &PublicKey{point: s.curve.ScalarBaseMul(sc)},
	}
	copy(k.key[:], sc.Encode())

	return k, nil
}

// PublicKeyFromBytes decodes a packed public point. The identity is
// rejected.
func (s *Session) PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	p, err := s.curve.DecodeToPoint(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}

	if p.IsZero() {
		return nil, errors.Wrap(ErrInvalidKey, "public key is the identity")
	}

	return &PublicKey{point: p}, nil
}

func (s *Session) scalar(k *PrivateKey) types.Scalar {
	return s.curve.ClampedScalarFromBytes(k.key)
}

// Encrypt seals plain for pub and returns R || ciphertext.
func (s *Session) Encrypt(plain []byte, pub *PublicKey) ([]byte, error) {
	var seed [32]byte
	if _, err := io.ReadFull(s.rand, seed[:]); err != nil {
		return nil, errors.Wrap(err, "failed to generate ephemeral key")
	}

	e := s.curve.ClampedScalarFromBytes(seed)
	for i := range seed {
		seed[i] = 0
	}

	ephemeral := s.curve.ScalarBaseMul(e)
	shared := s.curve.ScalarMul(e, pub.point)
	if shared.IsZero() {
		s.logger.Warn("refusing to encrypt to a small-order public key")
		return nil, errors.Wrap(ErrInvalidKey, "shared secret is the identity")
	}

	key, nonce, err := s.deriveKeys(shared, ephemeral, pub.point)
	if err != nil {
		return nil, err
	}

	sealed, err := s.seal(key, nonce, plain, ephemeral.Encode())
	if err != nil {
		return nil, err
	}

	env := &envelope{
		ephemeral: ephemeral,
		sealed:    sealed,
	}
	out := env.Serialize()

	s.logger.Debug("encrypted message", "plaintext", len(plain), "ciphertext", len(out), "cipher", s.cipher)
	return out, nil
}

// Decrypt opens a ciphertext produced by Encrypt for prv's public key.
func (s *Session) Decrypt(in []byte, prv *PrivateKey) ([]byte, error) {
	env := new(envelope)
	if err := env.Deserialize(s.curve, s.overhead(), in); err != nil {
		s.logger.Warn("malformed ciphertext", "size", len(in), "error", err)
		return nil, errors.Wrap(ErrInvalidCiphertext, err.Error())
	}

	shared := s.curve.ScalarMul(s.scalar(prv), env.ephemeral)
	if shared.IsZero() {
		s.logger.Warn("ciphertext carries a small-order ephemeral point")
		return nil, errors.Wrap(ErrInvalidCiphertext, "shared secret is the identity")
	}

	key, nonce, err := s.deriveKeys(shared, env.ephemeral, prv.public.point)
	if err != nil {
		return nil, err
	}

	plain, err := s.open(key, nonce, env.sealed, env.ephemeral.Encode())
	if err != nil {
		s.logger.Warn("failed to open ciphertext", "size", len(in))
		return nil, err
	}

	s.logger.Debug("decrypted message", "ciphertext", len(in), "plaintext", len(plain))
	return plain, nil
}

// EncryptToBase64 is Encrypt with standard base64 output.
func (s *Session) EncryptToBase64(plain []byte, pub *PublicKey) (string, error) {
	out, err := s.Encrypt(plain, pub)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptFromBase64 decodes standard base64 and calls Decrypt.
func (s *Session) DecryptFromBase64(in string, prv *PrivateKey) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(in)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCiphertext, err.Error())
	}

	return s.Decrypt(raw, prv)
}

// Sign returns a 64-byte Schnorr signature over msg.
func (s *Session) Sign(msg []byte, prv *PrivateKey) ([]byte, error) {
	sig, err := s.curve.Sign(s.scalar(prv), msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign")
	}

	return sig, nil
}

// Verify reports whether sig is a valid signature over msg by pub.
func (s *Session) Verify(msg, sig []byte, pub *PublicKey) bool {
	return s.curve.Verify(pub.point, msg, sig)
}

func (s *Session) deriveKeys(shared, ephemeral, recipient types.Point) (key, nonce []byte, err error) {
	salt := append(ephemeral.Encode(), recipient.Encode()...)
	kdf := hkdf.New(sha256.New, shared.Encode(), salt, []byte(kdfInfo+s.cipher.String()))

	out := make([]byte, keySize+s.nonceSize())
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, nil, errors.Wrap(err, "failed to derive keys")
	}

	return out[:keySize], out[keySize:], nil
}

func (s *Session) nonceSize() int {
	if s.cipher == XSalsa20Poly1305 {
		return 24
	}
	return chacha20poly1305.NonceSize
}

func (s *Session) overhead() int {
	if s.cipher == XSalsa20Poly1305 {
		return secretbox.Overhead
	}
	return chacha20poly1305.Overhead
}

// seal encrypts plain; ad is authenticated by ChaCha20-Poly1305 and bound
// through the key derivation for secretbox.
func (s *Session) seal(key, nonce, plain, ad []byte) ([]byte, error) {
	if s.cipher == XSalsa20Poly1305 {
		var k [32]byte
		var n [24]byte
		copy(k[:], key)
		copy(n[:], nonce)

		return secretbox.Seal(nil, plain, &n, &k), nil
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	return aead.Seal(nil, nonce, plain, ad), nil
}

func (s *Session) open(key, nonce, sealed, ad []byte) ([]byte, error) {
	if s.cipher == XSalsa20Poly1305 {
		var k [32]byte
		var n [24]byte
		copy(k[:], key)
		copy(n[:], nonce)

		plain, ok := secretbox.Open(nil, sealed, &n, &k)
		if !ok {
			return nil, ErrInvalidCiphertext
		}
		return plain, nil
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	plain, err := aead.Open(nil, nonce, sealed, ad)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCiphertext, err.Error())
	}

	return plain, nil
}

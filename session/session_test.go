package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-uecc/ec25519"
)

const testMessage = "If you waste your time a talking\nTo the people who don't listen"

func newTestSession(t *testing.T, conv ec25519.Convention, cipher CipherSuite) *Session {
	cfg := DefaultConfig()
	cfg.Convention = conv
	cfg.Cipher = cipher
	cfg.Logger = hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Level:  hclog.Trace,
		Output: &bytes.Buffer{},
	})

	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func allSessions(t *testing.T) []*Session {
	var out []*Session
	for _, conv := range []ec25519.Convention{ec25519.Legacy, ec25519.Ed25519} {
		for _, cipher := range []CipherSuite{ChaCha20Poly1305, XSalsa20Poly1305} {
			out = append(out, newTestSession(t, conv, cipher))
		}
	}
	return out
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Convention = 0
	_, err := New(cfg)
	require.ErrorIs(t, err, ec25519.ErrUnknownConvention)

	cfg = DefaultConfig()
	cfg.Cipher = 9
	_, err = New(cfg)
	require.ErrorIs(t, err, ErrUnknownCipher)

	s, err := New(nil)
	require.NoError(t, err)
	require.Equal(t, ec25519.Ed25519, s.Convention())
	require.Equal(t, ChaCha20Poly1305, s.Cipher())
}

func TestParseCipherSuite(t *testing.T) {
	c, err := ParseCipherSuite("XSalsa20Poly1305")
	require.NoError(t, err)
	require.Equal(t, XSalsa20Poly1305, c)

	_, err = ParseCipherSuite("aes")
	require.ErrorIs(t, err, ErrUnknownCipher)
}

func TestEncryptDecrypt(t *testing.T) {
	for _, s := range allSessions(t) {
		prv, err := s.GenerateKey()
		require.NoError(t, err)

		ct, err := s.Encrypt([]byte(testMessage), prv.Public())
		require.NoError(t, err)
		require.Len(t, ct, 32+len(testMessage)+s.overhead())

		plain, err := s.Decrypt(ct, prv)
		require.NoError(t, err)
		require.Equal(t, testMessage, string(plain))

		// a fresh ephemeral key every time
		ct2, err := s.Encrypt([]byte(testMessage), prv.Public())
		require.NoError(t, err)
		require.NotEqual(t, ct, ct2)
	}
}

func TestEncryptDecrypt_Empty(t *testing.T) {
	for _, s := range allSessions(t) {
		prv, err := s.GenerateKey()
		require.NoError(t, err)

		ct, err := s.Encrypt(nil, prv.Public())
		require.NoError(t, err)

		plain, err := s.Decrypt(ct, prv)
		require.NoError(t, err)
		require.Empty(t, plain)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	for _, s := range allSessions(t) {
		alice, err := s.GenerateKey()
		require.NoError(t, err)
		bob, err := s.GenerateKey()
		require.NoError(t, err)

		ct, err := s.Encrypt([]byte(testMessage), alice.Public())
		require.NoError(t, err)

		_, err = s.Decrypt(ct, bob)
		require.ErrorIs(t, err, ErrInvalidCiphertext)
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	for _, s := range allSessions(t) {
		prv, err := s.GenerateKey()
		require.NoError(t, err)

		ct, err := s.Encrypt([]byte(testMessage), prv.Public())
		require.NoError(t, err)

		body := append([]byte{}, ct...)
		body[len(body)-1] ^= 0x01
		_, err = s.Decrypt(body, prv)
		require.ErrorIs(t, err, ErrInvalidCiphertext)

		_, err = s.Decrypt(ct[:20], prv)
		require.ErrorIs(t, err, ErrInvalidCiphertext)
	}
}

func TestDecrypt_IdentityEphemeral(t *testing.T) {
	s := newTestSession(t, ec25519.Ed25519, ChaCha20Poly1305)

	prv, err := s.GenerateKey()
	require.NoError(t, err)

	ct := make([]byte, 32+s.overhead())
	copy(ct, ec25519.NewIdentityPoint().Bytes(ec25519.Ed25519))

	_, err = s.Decrypt(ct, prv)
	require.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestBase64RoundTrip(t *testing.T) {
	for _, s := range allSessions(t) {
		prv, err := s.GenerateKey()
		require.NoError(t, err)

		enc, err := s.EncryptToBase64([]byte(testMessage), prv.Public())
		require.NoError(t, err)
		require.False(t, strings.ContainsAny(enc, "\n "))

		plain, err := s.DecryptFromBase64(enc, prv)
		require.NoError(t, err)
		require.Equal(t, testMessage, string(plain))

		_, err = s.DecryptFromBase64("not base64!", prv)
		require.ErrorIs(t, err, ErrInvalidCiphertext)
	}
}

func TestKeyEncoding(t *testing.T) {
	for _, s := range allSessions(t) {
		prv, err := s.GenerateKey()
		require.NoError(t, err)

		key := prv.Bytes()
		require.Zero(t, key[0]&0x07)
		require.Equal(t, byte(0x40), key[31]&0xc0)

		prv2, err := s.PrivateKeyFromBytes(key)
		require.NoError(t, err)
		require.Equal(t, prv.Public().Bytes(), prv2.Public().Bytes())

		pub, err := s.PublicKeyFromBytes(prv.Public().Bytes())
		require.NoError(t, err)

		ct, err := s.Encrypt([]byte(testMessage), pub)
		require.NoError(t, err)
		plain, err := s.Decrypt(ct, prv2)
		require.NoError(t, err)
		require.Equal(t, testMessage, string(plain))
	}
}

func TestKeyDecoding_Invalid(t *testing.T) {
	s := newTestSession(t, ec25519.Ed25519, ChaCha20Poly1305)

	_, err := s.PrivateKeyFromBytes(make([]byte, 31))
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = s.PublicKeyFromBytes(make([]byte, 5))
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = s.PublicKeyFromBytes(ec25519.NewIdentityPoint().Bytes(ec25519.Ed25519))
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestGenerateKey_ShortRand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rand = bytes.NewReader(make([]byte, 16))

	s, err := New(cfg)
	require.NoError(t, err)

	_, err = s.GenerateKey()
	require.Error(t, err)
}

func TestDeterministicRand(t *testing.T) {
	newSession := func() *Session {
		cfg := DefaultConfig()
		cfg.Rand = bytes.NewReader(bytes.Repeat([]byte{0x5a}, 64))

		s, err := New(cfg)
		require.NoError(t, err)
		return s
	}

	s1, s2 := newSession(), newSession()

	k1, err := s1.GenerateKey()
	require.NoError(t, err)
	k2, err := s2.GenerateKey()
	require.NoError(t, err)
	require.Equal(t, k1.Bytes(), k2.Bytes())

	ct1, err := s1.Encrypt([]byte(testMessage), k1.Public())
	require.NoError(t, err)
	ct2, err := s2.Encrypt([]byte(testMessage), k2.Public())
	require.NoError(t, err)
	require.Equal(t, ct1, ct2)
}

func TestWipe(t *testing.T) {
	s := newTestSession(t, ec25519.Legacy, ChaCha20Poly1305)

	prv, err := s.GenerateKey()
	require.NoError(t, err)

	prv.Wipe()
	require.Equal(t, make([]byte, 32), prv.Bytes())
}

func TestSignVerify(t *testing.T) {
	for _, s := range allSessions(t) {
		prv, err := s.GenerateKey()
		require.NoError(t, err)

		sig, err := s.Sign([]byte(testMessage), prv)
		require.NoError(t, err)
		require.True(t, s.Verify([]byte(testMessage), sig, prv.Public()))
		require.False(t, s.Verify([]byte("something else"), sig, prv.Public()))

		other, err := s.GenerateKey()
		require.NoError(t, err)
		require.False(t, s.Verify([]byte(testMessage), sig, other.Public()))
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer

	cfg := DefaultConfig()
	cfg.Logger = hclog.New(&hclog.LoggerOptions{
		Name:   "uecc",
		Level:  hclog.Debug,
		Output: &buf,
	})

	s, err := New(cfg)
	require.NoError(t, err)

	prv, err := s.GenerateKey()
	require.NoError(t, err)

	_, err = s.Encrypt([]byte(testMessage), prv.Public())
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "uecc.session")
	require.Contains(t, out, "encrypted message")
	require.NotContains(t, out, testMessage)
}

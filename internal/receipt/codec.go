package receipt

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/roach88/msgcore/internal/ir"
)

// NonceSize is the size of the receipt nonce shared with the recipient.
const NonceSize = 16

// keyAlgorithmXChaCha20Poly1305 prefixes encoded keys.
const keyAlgorithmXChaCha20Poly1305 byte = 0x01

var (
	// ErrAuthentication means the ciphertext does not authenticate under the key.
	ErrAuthentication = errors.New("receipt: ciphertext does not authenticate")
	// ErrDecode means the plaintext does not parse as a receipt payload.
	ErrDecode = errors.New("receipt: malformed payload")
	// ErrInvalidKey means the encoded key is not a supported AEAD key.
	ErrInvalidKey = errors.New("receipt: invalid key")
)

// Status is what a receipt acknowledges.
type Status int

const (
	StatusDelivered Status = 1
	StatusRead      Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusRead:
		return "read"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) valid() bool {
	return s == StatusDelivered || s == StatusRead
}

// Elements are generated once per outgoing message (or attachment) and
// travel inside it, so only sender and recipient can produce or read
// receipts bound to Nonce.
type Elements struct {
	Nonce [NonceSize]byte
	// Key is an encoded authenticated-encryption key: one algorithm byte
	// followed by the raw key.
	Key []byte
}

// GenerateElements draws a fresh nonce and key from crypto/rand.
func GenerateElements() (Elements, error) {
	var e Elements
	if _, err := rand.Read(e.Nonce[:]); err != nil {
		return Elements{}, fmt.Errorf("generate receipt nonce: %w", err)
	}
	key := make([]byte, 1+chacha20poly1305.KeySize)
	key[0] = keyAlgorithmXChaCha20Poly1305
	if _, err := rand.Read(key[1:]); err != nil {
		return Elements{}, fmt.Errorf("generate receipt key: %w", err)
	}
	e.Key = key
	return e, nil
}

func (e Elements) aead() (cipher.AEAD, error) {
	if len(e.Key) != 1+chacha20poly1305.KeySize || e.Key[0] != keyAlgorithmXChaCha20Poly1305 {
		return nil, ErrInvalidKey
	}
	return chacha20poly1305.NewX(e.Key[1:])
}

// Payload is the plaintext of a receipt. AttachmentNumber is nil for a
// message receipt.
type Payload struct {
	Identity         ir.CryptoID
	Status           Status
	AttachmentNumber *int
}

// Seal encrypts p. The receipt nonce is bound as associated data; the AEAD
// nonce is prepended to the ciphertext.
func Seal(e Elements, p Payload) ([]byte, error) {
	aead, err := e.aead()
	if err != nil {
		return nil, err
	}
	plaintext, err := encodePayload(p)
	if err != nil {
		return nil, err
	}

	out := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("seal receipt: %w", err)
	}
	return aead.Seal(out, out, plaintext, e.Nonce[:]), nil
}

// Open authenticates and decodes a sealed receipt payload.
func Open(e Elements, sealed []byte) (Payload, error) {
	aead, err := e.aead()
	if err != nil {
		return Payload{}, err
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return Payload{}, ErrAuthentication
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, e.Nonce[:])
	if err != nil {
		return Payload{}, ErrAuthentication
	}
	return decodePayload(plaintext)
}

func encodePayload(p Payload) ([]byte, error) {
	if len(p.Identity) == 0 {
		return nil, fmt.Errorf("encode receipt: empty identity")
	}
	if !p.Status.valid() {
		return nil, fmt.Errorf("encode receipt: unknown status %d", int(p.Status))
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	n := 2
	if p.AttachmentNumber != nil {
		n = 3
	}
	if err := enc.EncodeArrayLen(n); err != nil {
		return nil, fmt.Errorf("encode receipt: %w", err)
	}
	if err := enc.EncodeBytes(p.Identity); err != nil {
		return nil, fmt.Errorf("encode receipt: %w", err)
	}
	if err := enc.EncodeInt(int64(p.Status)); err != nil {
		return nil, fmt.Errorf("encode receipt: %w", err)
	}
	if p.AttachmentNumber != nil {
		if err := enc.EncodeInt(int64(*p.AttachmentNumber)); err != nil {
			return nil, fmt.Errorf("encode receipt: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func decodePayload(plaintext []byte) (Payload, error) {
	r := bytes.NewReader(plaintext)
	dec := msgpack.NewDecoder(r)

	n, err := dec.DecodeArrayLen()
	if err != nil || (n != 2 && n != 3) {
		return Payload{}, ErrDecode
	}
	identity, err := dec.DecodeBytes()
	if err != nil || len(identity) == 0 {
		return Payload{}, ErrDecode
	}
	status, err := dec.DecodeInt()
	if err != nil || !Status(status).valid() {
		return Payload{}, ErrDecode
	}
	p := Payload{Identity: ir.CryptoID(identity), Status: Status(status)}
	if n == 3 {
		attachment, err := dec.DecodeInt()
		if err != nil || attachment < 0 {
			return Payload{}, ErrDecode
		}
		p.AttachmentNumber = &attachment
	}
	if r.Len() != 0 {
		return Payload{}, ErrDecode
	}
	return p, nil
}

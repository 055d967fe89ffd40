package ir

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// UIDLength is the byte length of every UID.
const UIDLength = 32

// CryptoID is an opaque identity (owned identity or contact identity).
type CryptoID []byte

// String returns the lowercase hex form.
func (c CryptoID) String() string {
	return hex.EncodeToString(c)
}

// Equal reports whether two identities are byte-identical.
func (c CryptoID) Equal(other CryptoID) bool {
	return bytes.Equal(c, other)
}

// MarshalJSON encodes the identity as a hex string.
func (c CryptoID) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// ParseCryptoID decodes a hex identity.
func ParseCryptoID(s string) (CryptoID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse identity: %w", err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("parse identity: empty")
	}
	return CryptoID(b), nil
}

// UID is a 32-byte unique identifier (message, device, group).
type UID [UIDLength]byte

// String returns the lowercase hex form.
func (u UID) String() string {
	return hex.EncodeToString(u[:])
}

// MarshalJSON encodes the UID as a hex string.
func (u UID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// ParseUID decodes a 64-character hex UID.
func ParseUID(s string) (UID, error) {
	var u UID
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, fmt.Errorf("parse uid: %w", err)
	}
	if len(b) != UIDLength {
		return u, fmt.Errorf("parse uid: expected %d bytes, got %d", UIDLength, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// UIDFromBytes copies b into a UID. b must be exactly UIDLength bytes.
func UIDFromBytes(b []byte) (UID, error) {
	var u UID
	if len(b) != UIDLength {
		return u, fmt.Errorf("uid: expected %d bytes, got %d", UIDLength, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// MessageID identifies an outbox or inbox message.
type MessageID struct {
	OwnedIdentity CryptoID `json:"owned_identity"`
	UID           UID      `json:"uid"`
}

// Key returns a string usable as a map key.
func (m MessageID) Key() string {
	return m.OwnedIdentity.String() + "/" + m.UID.String()
}

// AttachmentID identifies one attachment of a message.
type AttachmentID struct {
	MessageID        MessageID `json:"message_id"`
	AttachmentNumber int       `json:"attachment_number"`
}

// GroupID identifies a contact group from the point of view of an owned identity.
type GroupID struct {
	GroupUID   UID      `json:"group_uid"`
	GroupOwner CryptoID `json:"group_owner"`
}

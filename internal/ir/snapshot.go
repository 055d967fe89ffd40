package ir

import "time"

// ContactSnapshot is a hydrated, read-only view of a contact at one instant.
type ContactSnapshot struct {
	OwnedIdentity           CryptoID `json:"owned_identity"`
	Identity                CryptoID `json:"identity"`
	TrustedDisplayName      string   `json:"trusted_display_name"`
	PublishedDisplayName    string   `json:"published_display_name,omitempty"`
	PublishedDetailsVersion int64    `json:"published_details_version"`
	IsActive                bool     `json:"is_active"`
	IsRevokedAsCompromised  bool     `json:"is_revoked_as_compromised"`
	Capabilities            []string `json:"capabilities"`
	TrustedPhotoURL         string   `json:"trusted_photo_url,omitempty"`
	DeviceUIDs              []UID    `json:"device_uids"`
	EstablishedChannels     int      `json:"established_channels"`
}

// OwnedIdentitySnapshot is a hydrated view of an identity owned on this device.
type OwnedIdentitySnapshot struct {
	Identity              CryptoID `json:"identity"`
	DisplayName           string   `json:"display_name"`
	IsActive              bool     `json:"is_active"`
	IsKeycloakManaged     bool     `json:"is_keycloak_managed"`
	Capabilities          []string `json:"capabilities"`
	PhotoURL              string   `json:"photo_url,omitempty"`
	PublicationInProgress bool     `json:"publication_in_progress"`
}

// OwnedDevice is one device of an owned identity, this one included.
type OwnedDevice struct {
	UID        UID    `json:"uid"`
	Name       string `json:"name,omitempty"`
	IsCurrent  bool   `json:"is_current"`
	HasChannel bool   `json:"has_channel"`
}

// OwnedDevicesSnapshot is an owned identity with every device it is known
// to run on.
type OwnedDevicesSnapshot struct {
	Owned   OwnedIdentitySnapshot `json:"owned"`
	Devices []OwnedDevice         `json:"devices"`
}

// GroupMember is one member (or pending member) of a contact group.
type GroupMember struct {
	Identity CryptoID `json:"identity"`
	Pending  bool     `json:"pending"`
}

// GroupSnapshot is a hydrated view of a contact group.
type GroupSnapshot struct {
	OwnedIdentity CryptoID      `json:"owned_identity"`
	Group         GroupID       `json:"group"`
	TrustedName   string        `json:"trusted_name"`
	PublishedName string        `json:"published_name,omitempty"`
	Members       []GroupMember `json:"members"`
}

// MessageAck is one fully acknowledged outbox message.
type MessageAck struct {
	MessageID           MessageID `json:"message_id"`
	TimestampFromServer time.Time `json:"timestamp_from_server"`
}

// ReturnReceipt is an encrypted receipt as received from the server.
type ReturnReceipt struct {
	OwnedIdentity    CryptoID  `json:"owned_identity"`
	ServerUID        UID       `json:"server_uid"`
	Nonce            []byte    `json:"nonce"`
	EncryptedPayload []byte    `json:"encrypted_payload"`
	Timestamp        time.Time `json:"timestamp"`
}

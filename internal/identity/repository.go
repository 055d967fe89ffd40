// Package identity is the read model of owned identities, contacts and
// contact groups kept in the shared store.
//
// The router hydrates events through Repository inside a short-lived
// transaction it owns. Writers (Put*, Delete*) are used by the components
// that own this state, and by tests and the CLI to seed it; each write
// appends to the change log in the caller's transaction.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/store"
)

// ErrNotFound is returned when the entity to hydrate no longer exists.
var ErrNotFound = errors.New("identity: entity not found")

// Repository reads snapshots. It holds no state; all reads go through the
// caller's transaction.
type Repository struct{}

// OwnedIdentity hydrates an owned identity.
func (Repository) OwnedIdentity(ctx context.Context, tx *store.Tx, owned ir.CryptoID) (ir.OwnedIdentitySnapshot, error) {
	snap := ir.OwnedIdentitySnapshot{Identity: owned}
	var caps string
	err := tx.QueryRowContext(ctx, `
		SELECT display_name, is_active, is_keycloak_managed, capabilities, photo_url, publication_in_progress
		FROM owned_identities WHERE identity = ?
	`, owned.String()).Scan(
		&snap.DisplayName, &snap.IsActive, &snap.IsKeycloakManaged, &caps, &snap.PhotoURL, &snap.PublicationInProgress,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, fmt.Errorf("owned identity %s: %w", owned, ErrNotFound)
	}
	if err != nil {
		return snap, fmt.Errorf("hydrate owned identity: %w", err)
	}
	snap.Capabilities = splitCapabilities(caps)
	return snap, nil
}

// OwnedDevices hydrates an owned identity with its devices, the current one
// first.
func (r Repository) OwnedDevices(ctx context.Context, tx *store.Tx, owned ir.CryptoID) (ir.OwnedDevicesSnapshot, error) {
	o, err := r.OwnedIdentity(ctx, tx, owned)
	if err != nil {
		return ir.OwnedDevicesSnapshot{}, err
	}
	snap := ir.OwnedDevicesSnapshot{Owned: o, Devices: []ir.OwnedDevice{}}

	rows, err := tx.QueryContext(ctx, `
		SELECT device_uid, name, is_current, has_channel FROM owned_devices
		WHERE owned_identity = ?
		ORDER BY is_current DESC, device_uid ASC
	`, owned.String())
	if err != nil {
		return snap, fmt.Errorf("hydrate owned devices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hexUID string
		var d ir.OwnedDevice
		if err := rows.Scan(&hexUID, &d.Name, &d.IsCurrent, &d.HasChannel); err != nil {
			return snap, fmt.Errorf("hydrate owned devices: scan: %w", err)
		}
		if d.UID, err = ir.ParseUID(hexUID); err != nil {
			return snap, fmt.Errorf("hydrate owned devices: %w", err)
		}
		snap.Devices = append(snap.Devices, d)
	}
	return snap, rows.Err()
}

// Contact hydrates a contact together with its devices.
func (Repository) Contact(ctx context.Context, tx *store.Tx, owned, contact ir.CryptoID) (ir.ContactSnapshot, error) {
	snap := ir.ContactSnapshot{OwnedIdentity: owned, Identity: contact}
	var caps string
	err := tx.QueryRowContext(ctx, `
		SELECT trusted_display_name, published_display_name, published_details_version,
		       is_active, is_revoked_as_compromised, capabilities, trusted_photo_url
		FROM contacts WHERE owned_identity = ? AND identity = ?
	`, owned.String(), contact.String()).Scan(
		&snap.TrustedDisplayName, &snap.PublishedDisplayName, &snap.PublishedDetailsVersion,
		&snap.IsActive, &snap.IsRevokedAsCompromised, &caps, &snap.TrustedPhotoURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, fmt.Errorf("contact %s of %s: %w", contact, owned, ErrNotFound)
	}
	if err != nil {
		return snap, fmt.Errorf("hydrate contact: %w", err)
	}
	snap.Capabilities = splitCapabilities(caps)

	rows, err := tx.QueryContext(ctx, `
		SELECT device_uid, has_channel FROM contact_devices
		WHERE owned_identity = ? AND contact_identity = ?
		ORDER BY device_uid ASC
	`, owned.String(), contact.String())
	if err != nil {
		return snap, fmt.Errorf("hydrate contact devices: %w", err)
	}
	defer rows.Close()

	snap.DeviceUIDs = []ir.UID{}
	for rows.Next() {
		var hexUID string
		var hasChannel bool
		if err := rows.Scan(&hexUID, &hasChannel); err != nil {
			return snap, fmt.Errorf("hydrate contact devices: scan: %w", err)
		}
		uid, err := ir.ParseUID(hexUID)
		if err != nil {
			return snap, fmt.Errorf("hydrate contact devices: %w", err)
		}
		snap.DeviceUIDs = append(snap.DeviceUIDs, uid)
		if hasChannel {
			snap.EstablishedChannels++
		}
	}
	return snap, rows.Err()
}

// Group hydrates a contact group with its members.
func (Repository) Group(ctx context.Context, tx *store.Tx, owned ir.CryptoID, group ir.GroupID) (ir.GroupSnapshot, error) {
	snap := ir.GroupSnapshot{OwnedIdentity: owned, Group: group}
	err := tx.QueryRowContext(ctx, `
		SELECT trusted_name, published_name FROM contact_groups
		WHERE owned_identity = ? AND group_uid = ? AND group_owner = ?
	`, owned.String(), group.GroupUID.String(), group.GroupOwner.String()).Scan(&snap.TrustedName, &snap.PublishedName)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, fmt.Errorf("group %s: %w", group.GroupUID, ErrNotFound)
	}
	if err != nil {
		return snap, fmt.Errorf("hydrate group: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT member_identity, pending FROM group_members
		WHERE owned_identity = ? AND group_uid = ? AND group_owner = ?
		ORDER BY pending ASC, member_identity ASC
	`, owned.String(), group.GroupUID.String(), group.GroupOwner.String())
	if err != nil {
		return snap, fmt.Errorf("hydrate group members: %w", err)
	}
	defer rows.Close()

	snap.Members = []ir.GroupMember{}
	for rows.Next() {
		var hexID string
		var m ir.GroupMember
		if err := rows.Scan(&hexID, &m.Pending); err != nil {
			return snap, fmt.Errorf("hydrate group members: scan: %w", err)
		}
		if m.Identity, err = ir.ParseCryptoID(hexID); err != nil {
			return snap, fmt.Errorf("hydrate group members: %w", err)
		}
		snap.Members = append(snap.Members, m)
	}
	return snap, rows.Err()
}

func splitCapabilities(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func joinCapabilities(caps []string) string {
	sorted := slices.Clone(caps)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), ",")
}

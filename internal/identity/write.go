package identity

import (
	"context"
	"fmt"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/store"
)

// PutOwnedIdentity inserts or replaces an owned identity.
func PutOwnedIdentity(ctx context.Context, tx *store.Tx, o ir.OwnedIdentitySnapshot) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO owned_identities
		(identity, display_name, is_active, is_keycloak_managed, capabilities, photo_url, publication_in_progress)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			display_name = excluded.display_name,
			is_active = excluded.is_active,
			is_keycloak_managed = excluded.is_keycloak_managed,
			capabilities = excluded.capabilities,
			photo_url = excluded.photo_url,
			publication_in_progress = excluded.publication_in_progress
	`, o.Identity.String(), o.DisplayName, o.IsActive, o.IsKeycloakManaged,
		joinCapabilities(o.Capabilities), o.PhotoURL, o.PublicationInProgress)
	if err != nil {
		return fmt.Errorf("put owned identity: %w", err)
	}
	return nil
}

// PutOwnedDevice inserts or replaces one device of an owned identity.
func PutOwnedDevice(ctx context.Context, tx *store.Tx, owned ir.CryptoID, d ir.OwnedDevice) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO owned_devices (owned_identity, device_uid, name, is_current, has_channel)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owned_identity, device_uid) DO UPDATE SET
			name = excluded.name,
			is_current = excluded.is_current,
			has_channel = excluded.has_channel
	`, owned.String(), d.UID.String(), d.Name, d.IsCurrent, d.HasChannel)
	if err != nil {
		return fmt.Errorf("put owned device: %w", err)
	}
	return tx.AppendChange(ctx, ir.EntityOwnedDevice, ir.OpUpdate, ownedDeviceKey(owned, d.UID))
}

// DeleteOwnedDevice removes one device of an owned identity.
func DeleteOwnedDevice(ctx context.Context, tx *store.Tx, owned ir.CryptoID, device ir.UID) error {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM owned_devices WHERE owned_identity = ? AND device_uid = ?
	`, owned.String(), device.String())
	if err != nil {
		return fmt.Errorf("delete owned device: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	return tx.AppendChange(ctx, ir.EntityOwnedDevice, ir.OpDelete, ownedDeviceKey(owned, device))
}

// PutContact inserts or replaces a contact and its device list.
func PutContact(ctx context.Context, tx *store.Tx, c ir.ContactSnapshot) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO contacts
		(owned_identity, identity, trusted_display_name, published_display_name, published_details_version,
		 is_active, is_revoked_as_compromised, capabilities, trusted_photo_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owned_identity, identity) DO UPDATE SET
			trusted_display_name = excluded.trusted_display_name,
			published_display_name = excluded.published_display_name,
			published_details_version = excluded.published_details_version,
			is_active = excluded.is_active,
			is_revoked_as_compromised = excluded.is_revoked_as_compromised,
			capabilities = excluded.capabilities,
			trusted_photo_url = excluded.trusted_photo_url
	`, c.OwnedIdentity.String(), c.Identity.String(), c.TrustedDisplayName, c.PublishedDisplayName,
		c.PublishedDetailsVersion, c.IsActive, c.IsRevokedAsCompromised, joinCapabilities(c.Capabilities), c.TrustedPhotoURL)
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}

	for _, uid := range c.DeviceUIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contact_devices (owned_identity, contact_identity, device_uid)
			VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING
		`, c.OwnedIdentity.String(), c.Identity.String(), uid.String()); err != nil {
			return fmt.Errorf("put contact device: %w", err)
		}
	}
	return tx.AppendChange(ctx, ir.EntityContact, ir.OpUpdate, contactKey(c.OwnedIdentity, c.Identity))
}

// SetChannel records whether a confirmed channel exists with one contact device.
func SetChannel(ctx context.Context, tx *store.Tx, owned, contact ir.CryptoID, device ir.UID, established bool) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO contact_devices (owned_identity, contact_identity, device_uid, has_channel)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owned_identity, contact_identity, device_uid) DO UPDATE SET has_channel = excluded.has_channel
	`, owned.String(), contact.String(), device.String(), established)
	if err != nil {
		return fmt.Errorf("set channel: %w", err)
	}
	return tx.AppendChange(ctx, ir.EntityContact, ir.OpUpdate, contactKey(owned, contact), "channels")
}

// DeleteContact removes a contact; its devices go with it.
func DeleteContact(ctx context.Context, tx *store.Tx, owned, contact ir.CryptoID) error {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM contacts WHERE owned_identity = ? AND identity = ?
	`, owned.String(), contact.String())
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	return tx.AppendChange(ctx, ir.EntityContact, ir.OpDelete, contactKey(owned, contact))
}

// PutGroup inserts or replaces a group and its member list.
func PutGroup(ctx context.Context, tx *store.Tx, g ir.GroupSnapshot) error {
	owned, uid, owner := g.OwnedIdentity.String(), g.Group.GroupUID.String(), g.Group.GroupOwner.String()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO contact_groups (owned_identity, group_uid, group_owner, trusted_name, published_name)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owned_identity, group_uid, group_owner) DO UPDATE SET
			trusted_name = excluded.trusted_name,
			published_name = excluded.published_name
	`, owned, uid, owner, g.TrustedName, g.PublishedName)
	if err != nil {
		return fmt.Errorf("put group: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM group_members WHERE owned_identity = ? AND group_uid = ? AND group_owner = ?
	`, owned, uid, owner); err != nil {
		return fmt.Errorf("put group: members: %w", err)
	}
	for _, m := range g.Members {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO group_members (owned_identity, group_uid, group_owner, member_identity, pending)
			VALUES (?, ?, ?, ?, ?)
		`, owned, uid, owner, m.Identity.String(), m.Pending); err != nil {
			return fmt.Errorf("put group: member: %w", err)
		}
	}
	return tx.AppendChange(ctx, ir.EntityGroup, ir.OpUpdate, owned+"/"+uid+"/"+owner)
}

// DeleteGroup removes a group and its members.
func DeleteGroup(ctx context.Context, tx *store.Tx, owned ir.CryptoID, group ir.GroupID) error {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM contact_groups WHERE owned_identity = ? AND group_uid = ? AND group_owner = ?
	`, owned.String(), group.GroupUID.String(), group.GroupOwner.String())
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	return tx.AppendChange(ctx, ir.EntityGroup, ir.OpDelete,
		owned.String()+"/"+group.GroupUID.String()+"/"+group.GroupOwner.String())
}

func ownedDeviceKey(owned ir.CryptoID, device ir.UID) string {
	return owned.String() + "/" + device.String()
}

func contactKey(owned, contact ir.CryptoID) string {
	return owned.String() + "/" + contact.String()
}

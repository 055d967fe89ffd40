package notification

import (
	"github.com/roach88/msgcore/internal/ir"
)

type MutualScanContactAdded struct {
	Contact   ir.ContactSnapshot `json:"contact"`
	Signature []byte             `json:"signature"`
}

func (MutualScanContactAdded) Name() Name { return NameMutualScanContactAdded }
func (MutualScanContactAdded) notification() {}

type NewUserDialog struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	DialogUUID    string      `json:"dialog_uuid"`
	Category      string      `json:"category"`
}

func (NewUserDialog) Name() Name { return NameNewUserDialog }
func (NewUserDialog) notification() {}

type UserDialogDeleted struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	DialogUUID    string      `json:"dialog_uuid"`
}

func (UserDialogDeleted) Name() Name { return NameUserDialogDeleted }
func (UserDialogDeleted) notification() {}

type KeycloakSynchronizationRequired struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
}

func (KeycloakSynchronizationRequired) Name() Name { return NameKeycloakSynchronizationRequired }
func (KeycloakSynchronizationRequired) notification() {}

type ContactIntroductionInvitationSent struct {
	OwnedIdentity    ir.CryptoID `json:"owned_identity"`
	ContactIdentityA ir.CryptoID `json:"contact_identity_a"`
	ContactIdentityB ir.CryptoID `json:"contact_identity_b"`
}

func (ContactIntroductionInvitationSent) Name() Name { return NameContactIntroductionInvitationSent }
func (ContactIntroductionInvitationSent) notification() {}

type OwnedIdentityTransferFailed struct {
	OwnedIdentity       ir.CryptoID `json:"owned_identity"`
	ProtocolInstanceUID ir.UID      `json:"protocol_instance_uid"`
	Reason              string      `json:"reason"`
}

func (OwnedIdentityTransferFailed) Name() Name { return NameOwnedIdentityTransferFailed }
func (OwnedIdentityTransferFailed) notification() {}

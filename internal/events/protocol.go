package events

import (
	"github.com/roach88/msgcore/internal/ir"
)

type MutualScanContactAdded struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
	Signature       []byte
}

func (MutualScanContactAdded) Kind() Kind { return KindMutualScanContactAdded }
func (MutualScanContactAdded) event() {}

type NewUserDialogToPresent struct {
	OwnedIdentity ir.CryptoID
	DialogUUID    string
	Category      string
}

func (NewUserDialogToPresent) Kind() Kind { return KindNewUserDialogToPresent }
func (NewUserDialogToPresent) event() {}

type UserDialogToDelete struct {
	OwnedIdentity ir.CryptoID
	DialogUUID    string
}

func (UserDialogToDelete) Kind() Kind { return KindUserDialogToDelete }
func (UserDialogToDelete) event() {}

type KeycloakSynchronizationRequired struct {
	OwnedIdentity ir.CryptoID
}

func (KeycloakSynchronizationRequired) Kind() Kind { return KindKeycloakSynchronizationRequired }
func (KeycloakSynchronizationRequired) event() {}

type ContactIntroductionInvitationSent struct {
	OwnedIdentity    ir.CryptoID
	ContactIdentityA ir.CryptoID
	ContactIdentityB ir.CryptoID
}

func (ContactIntroductionInvitationSent) Kind() Kind { return KindContactIntroductionInvitationSent }
func (ContactIntroductionInvitationSent) event() {}

type OwnedIdentityTransferProtocolFailed struct {
	OwnedIdentity       ir.CryptoID
	ProtocolInstanceUID ir.UID
	Reason              string
}

func (OwnedIdentityTransferProtocolFailed) Kind() Kind { return KindOwnedIdentityTransferProtocolFailed }
func (OwnedIdentityTransferProtocolFailed) event() {}

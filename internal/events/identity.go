package events

import (
	"github.com/roach88/msgcore/internal/ir"
)

// ContactIdentityIsNowTrusted is raised when a contact becomes trusted by an owned identity.
type ContactIdentityIsNowTrusted struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (ContactIdentityIsNowTrusted) Kind() Kind { return KindContactIdentityIsNowTrusted }
func (ContactIdentityIsNowTrusted) event() {}

type NewTrustedContactIdentityDetails struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (NewTrustedContactIdentityDetails) Kind() Kind { return KindNewTrustedContactIdentityDetails }
func (NewTrustedContactIdentityDetails) event() {}

type NewPublishedContactIdentityDetails struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (NewPublishedContactIdentityDetails) Kind() Kind { return KindNewPublishedContactIdentityDetails }
func (NewPublishedContactIdentityDetails) event() {}

type ContactIsActiveChanged struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (ContactIsActiveChanged) Kind() Kind { return KindContactIsActiveChanged }
func (ContactIsActiveChanged) event() {}

type ContactWasRevokedAsCompromised struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (ContactWasRevokedAsCompromised) Kind() Kind { return KindContactWasRevokedAsCompromised }
func (ContactWasRevokedAsCompromised) event() {}

type ContactCapabilitiesWereUpdated struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (ContactCapabilitiesWereUpdated) Kind() Kind { return KindContactCapabilitiesWereUpdated }
func (ContactCapabilitiesWereUpdated) event() {}

type TrustedPhotoOfContactWasUpdated struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (TrustedPhotoOfContactWasUpdated) Kind() Kind { return KindTrustedPhotoOfContactWasUpdated }
func (TrustedPhotoOfContactWasUpdated) event() {}

// ContactWasDeleted is raised after a contact was removed; there is nothing left to hydrate.
type ContactWasDeleted struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (ContactWasDeleted) Kind() Kind { return KindContactWasDeleted }
func (ContactWasDeleted) event() {}

type OwnedIdentityDetailsPublicationInProgress struct {
	OwnedIdentity ir.CryptoID
}

func (OwnedIdentityDetailsPublicationInProgress) Kind() Kind { return KindOwnedIdentityDetailsPublicationInProgress }
func (OwnedIdentityDetailsPublicationInProgress) event() {}

type OwnedIdentityCapabilitiesWereUpdated struct {
	OwnedIdentity ir.CryptoID
}

func (OwnedIdentityCapabilitiesWereUpdated) Kind() Kind { return KindOwnedIdentityCapabilitiesWereUpdated }
func (OwnedIdentityCapabilitiesWereUpdated) event() {}

type OwnedIdentityKeycloakServerChanged struct {
	OwnedIdentity ir.CryptoID
}

func (OwnedIdentityKeycloakServerChanged) Kind() Kind { return KindOwnedIdentityKeycloakServerChanged }
func (OwnedIdentityKeycloakServerChanged) event() {}

type PublishedPhotoOfOwnedIdentityWasUpdated struct {
	OwnedIdentity ir.CryptoID
}

func (PublishedPhotoOfOwnedIdentityWasUpdated) Kind() Kind { return KindPublishedPhotoOfOwnedIdentityWasUpdated }
func (PublishedPhotoOfOwnedIdentityWasUpdated) event() {}

type OwnedIdentityWasDeactivated struct {
	OwnedIdentity ir.CryptoID
}

func (OwnedIdentityWasDeactivated) Kind() Kind { return KindOwnedIdentityWasDeactivated }
func (OwnedIdentityWasDeactivated) event() {}

type OwnedIdentityWasReactivated struct {
	OwnedIdentity ir.CryptoID
}

func (OwnedIdentityWasReactivated) Kind() Kind { return KindOwnedIdentityWasReactivated }
func (OwnedIdentityWasReactivated) event() {}

type ContactWasUpdatedWithinTheIdentityManager struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (ContactWasUpdatedWithinTheIdentityManager) Kind() Kind { return KindContactWasUpdatedWithinTheIdentityManager }
func (ContactWasUpdatedWithinTheIdentityManager) event() {}

type PublishedPhotoOfContactWasUpdated struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
}

func (PublishedPhotoOfContactWasUpdated) Kind() Kind { return KindPublishedPhotoOfContactWasUpdated }
func (PublishedPhotoOfContactWasUpdated) event() {}

// NewContactDevice is raised once a device of a contact is known; its channel may not exist yet.
type NewContactDevice struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
	DeviceUID       ir.UID
}

func (NewContactDevice) Kind() Kind { return KindNewContactDevice }
func (NewContactDevice) event() {}

type UpdatedContactDevice struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
	DeviceUID       ir.UID
}

func (UpdatedContactDevice) Kind() Kind { return KindUpdatedContactDevice }
func (UpdatedContactDevice) event() {}

// NewRemoteOwnedDevice is raised when another device of an owned identity shows up.
type NewRemoteOwnedDevice struct {
	OwnedIdentity ir.CryptoID
	DeviceUID     ir.UID
}

func (NewRemoteOwnedDevice) Kind() Kind { return KindNewRemoteOwnedDevice }
func (NewRemoteOwnedDevice) event() {}

type AnOwnedDeviceWasUpdated struct {
	OwnedIdentity ir.CryptoID
}

func (AnOwnedDeviceWasUpdated) Kind() Kind { return KindAnOwnedDeviceWasUpdated }
func (AnOwnedDeviceWasUpdated) event() {}

type AnOwnedDeviceWasDeleted struct {
	OwnedIdentity ir.CryptoID
}

func (AnOwnedDeviceWasDeleted) Kind() Kind { return KindAnOwnedDeviceWasDeleted }
func (AnOwnedDeviceWasDeleted) event() {}

// OwnedIdentityWasDeleted is raised after the owned identity and everything it owned are gone.
type OwnedIdentityWasDeleted struct {
	OwnedIdentity ir.CryptoID
}

func (OwnedIdentityWasDeleted) Kind() Kind { return KindOwnedIdentityWasDeleted }
func (OwnedIdentityWasDeleted) event() {}

// OwnedIdentityRequiresPushRegistration is raised when a keycloak push topic changed, or when
// this device was missing from the last owned device discovery.
type OwnedIdentityRequiresPushRegistration struct {
	OwnedIdentity                       ir.CryptoID
	PerformOwnedDeviceDiscoveryOnFinish bool
}

func (OwnedIdentityRequiresPushRegistration) Kind() Kind { return KindOwnedIdentityRequiresPushRegistration }
func (OwnedIdentityRequiresPushRegistration) event() {}

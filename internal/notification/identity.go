package notification

import (
	"github.com/roach88/msgcore/internal/ir"
)

type NewTrustedContactIdentity struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (NewTrustedContactIdentity) Name() Name { return NameNewTrustedContactIdentity }
func (NewTrustedContactIdentity) notification() {}

type ContactTrustedDetailsUpdated struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (ContactTrustedDetailsUpdated) Name() Name { return NameContactTrustedDetailsUpdated }
func (ContactTrustedDetailsUpdated) notification() {}

type ContactPublishedDetailsUpdated struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (ContactPublishedDetailsUpdated) Name() Name { return NameContactPublishedDetailsUpdated }
func (ContactPublishedDetailsUpdated) notification() {}

type ContactActivityChanged struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (ContactActivityChanged) Name() Name { return NameContactActivityChanged }
func (ContactActivityChanged) notification() {}

type ContactRevokedAsCompromised struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (ContactRevokedAsCompromised) Name() Name { return NameContactRevokedAsCompromised }
func (ContactRevokedAsCompromised) notification() {}

type ContactCapabilitiesUpdated struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (ContactCapabilitiesUpdated) Name() Name { return NameContactCapabilitiesUpdated }
func (ContactCapabilitiesUpdated) notification() {}

type ContactTrustedPhotoUpdated struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (ContactTrustedPhotoUpdated) Name() Name { return NameContactTrustedPhotoUpdated }
func (ContactTrustedPhotoUpdated) notification() {}

type ContactWasDeleted struct {
	OwnedIdentity   ir.CryptoID `json:"owned_identity"`
	ContactIdentity ir.CryptoID `json:"contact_identity"`
}

func (ContactWasDeleted) Name() Name { return NameContactWasDeleted }
func (ContactWasDeleted) notification() {}

type OwnedIdentityPublicationInProgress struct {
	Owned ir.OwnedIdentitySnapshot `json:"owned"`
}

func (OwnedIdentityPublicationInProgress) Name() Name { return NameOwnedIdentityPublicationInProgress }
func (OwnedIdentityPublicationInProgress) notification() {}

type OwnedIdentityCapabilitiesUpdated struct {
	Owned ir.OwnedIdentitySnapshot `json:"owned"`
}

func (OwnedIdentityCapabilitiesUpdated) Name() Name { return NameOwnedIdentityCapabilitiesUpdated }
func (OwnedIdentityCapabilitiesUpdated) notification() {}

type OwnedIdentityKeycloakServerChanged struct {
	Owned ir.OwnedIdentitySnapshot `json:"owned"`
}

func (OwnedIdentityKeycloakServerChanged) Name() Name { return NameOwnedIdentityKeycloakServerChanged }
func (OwnedIdentityKeycloakServerChanged) notification() {}

type OwnedIdentityPublishedPhotoUpdated struct {
	Owned ir.OwnedIdentitySnapshot `json:"owned"`
}

func (OwnedIdentityPublishedPhotoUpdated) Name() Name { return NameOwnedIdentityPublishedPhotoUpdated }
func (OwnedIdentityPublishedPhotoUpdated) notification() {}

type OwnedIdentityWasDeactivated struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
}

func (OwnedIdentityWasDeactivated) Name() Name { return NameOwnedIdentityWasDeactivated }
func (OwnedIdentityWasDeactivated) notification() {}

type OwnedIdentityWasReactivated struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
}

func (OwnedIdentityWasReactivated) Name() Name { return NameOwnedIdentityWasReactivated }
func (OwnedIdentityWasReactivated) notification() {}

type ContactUpdated struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (ContactUpdated) Name() Name { return NameContactUpdated }
func (ContactUpdated) notification() {}

type ContactPublishedPhotoUpdated struct {
	Contact ir.ContactSnapshot `json:"contact"`
}

func (ContactPublishedPhotoUpdated) Name() Name { return NameContactPublishedPhotoUpdated }
func (ContactPublishedPhotoUpdated) notification() {}

type NewContactDevice struct {
	Contact   ir.ContactSnapshot `json:"contact"`
	DeviceUID ir.UID             `json:"device_uid"`
}

func (NewContactDevice) Name() Name { return NameNewContactDevice }
func (NewContactDevice) notification() {}

type UpdatedContactDevice struct {
	Contact   ir.ContactSnapshot `json:"contact"`
	DeviceUID ir.UID             `json:"device_uid"`
}

func (UpdatedContactDevice) Name() Name { return NameUpdatedContactDevice }
func (UpdatedContactDevice) notification() {}

type NewRemoteOwnedDevice struct {
	Owned     ir.OwnedDevicesSnapshot `json:"owned"`
	DeviceUID ir.UID                  `json:"device_uid"`
}

func (NewRemoteOwnedDevice) Name() Name { return NameNewRemoteOwnedDevice }
func (NewRemoteOwnedDevice) notification() {}

type OwnedDeviceUpdated struct {
	Owned ir.OwnedDevicesSnapshot `json:"owned"`
}

func (OwnedDeviceUpdated) Name() Name { return NameOwnedDeviceUpdated }
func (OwnedDeviceUpdated) notification() {}

type OwnedDeviceDeleted struct {
	Owned ir.OwnedDevicesSnapshot `json:"owned"`
}

func (OwnedDeviceDeleted) Name() Name { return NameOwnedDeviceDeleted }
func (OwnedDeviceDeleted) notification() {}

type OwnedIdentityWasDeleted struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
}

func (OwnedIdentityWasDeleted) Name() Name { return NameOwnedIdentityWasDeleted }
func (OwnedIdentityWasDeleted) notification() {}

type OwnedIdentityMustRegisterToPush struct {
	OwnedIdentity                       ir.CryptoID `json:"owned_identity"`
	PerformOwnedDeviceDiscoveryOnFinish bool        `json:"perform_owned_device_discovery_on_finish"`
}

func (OwnedIdentityMustRegisterToPush) Name() Name { return NameOwnedIdentityMustRegisterToPush }
func (OwnedIdentityMustRegisterToPush) notification() {}

package events

import (
	"github.com/roach88/msgcore/internal/ir"
)

// NewConfirmedObliviousChannel is raised once a secure channel with one contact device is confirmed.
type NewConfirmedObliviousChannel struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
	RemoteDeviceUID ir.UID
}

func (NewConfirmedObliviousChannel) Kind() Kind { return KindNewConfirmedObliviousChannel }
func (NewConfirmedObliviousChannel) event() {}

type DeletedConfirmedObliviousChannel struct {
	OwnedIdentity   ir.CryptoID
	ContactIdentity ir.CryptoID
	RemoteDeviceUID ir.UID
}

func (DeletedConfirmedObliviousChannel) Kind() Kind { return KindDeletedConfirmedObliviousChannel }
func (DeletedConfirmedObliviousChannel) event() {}

// NewConfirmedObliviousChannelWithOwnedDevice is raised once a secure channel with another
// device of the same owned identity is confirmed.
type NewConfirmedObliviousChannelWithOwnedDevice struct {
	OwnedIdentity   ir.CryptoID
	RemoteDeviceUID ir.UID
}

func (NewConfirmedObliviousChannelWithOwnedDevice) Kind() Kind { return KindNewConfirmedObliviousChannelWithOwnedDevice }
func (NewConfirmedObliviousChannelWithOwnedDevice) event() {}

type DeletedConfirmedObliviousChannelWithOwnedDevice struct {
	OwnedIdentity   ir.CryptoID
	RemoteDeviceUID ir.UID
}

func (DeletedConfirmedObliviousChannelWithOwnedDevice) Kind() Kind { return KindDeletedConfirmedObliviousChannelWithOwnedDevice }
func (DeletedConfirmedObliviousChannelWithOwnedDevice) event() {}

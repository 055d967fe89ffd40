package notification

import (
	"github.com/roach88/msgcore/internal/ir"
)

type ChannelEstablished struct {
	Contact         ir.ContactSnapshot `json:"contact"`
	RemoteDeviceUID ir.UID             `json:"remote_device_uid"`
}

func (ChannelEstablished) Name() Name { return NameChannelEstablished }
func (ChannelEstablished) notification() {}

type ChannelDeleted struct {
	Contact         ir.ContactSnapshot `json:"contact"`
	RemoteDeviceUID ir.UID             `json:"remote_device_uid"`
}

func (ChannelDeleted) Name() Name { return NameChannelDeleted }
func (ChannelDeleted) notification() {}

type OwnedDeviceChannelEstablished struct {
	Owned           ir.OwnedDevicesSnapshot `json:"owned"`
	RemoteDeviceUID ir.UID                  `json:"remote_device_uid"`
}

func (OwnedDeviceChannelEstablished) Name() Name { return NameOwnedDeviceChannelEstablished }
func (OwnedDeviceChannelEstablished) notification() {}

type OwnedDeviceChannelDeleted struct {
	Owned           ir.OwnedDevicesSnapshot `json:"owned"`
	RemoteDeviceUID ir.UID                  `json:"remote_device_uid"`
}

func (OwnedDeviceChannelDeleted) Name() Name { return NameOwnedDeviceChannelDeleted }
func (OwnedDeviceChannelDeleted) notification() {}

package notification

import (
	"github.com/roach88/msgcore/internal/ir"
)

type GroupJoined struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupJoined) Name() Name { return NameGroupJoined }
func (GroupJoined) notification() {}

type GroupCreated struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupCreated) Name() Name { return NameGroupCreated }
func (GroupCreated) notification() {}

type GroupPublishedDetailsUpdated struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupPublishedDetailsUpdated) Name() Name { return NameGroupPublishedDetailsUpdated }
func (GroupPublishedDetailsUpdated) notification() {}

type GroupTrustedDetailsUpdated struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupTrustedDetailsUpdated) Name() Name { return NameGroupTrustedDetailsUpdated }
func (GroupTrustedDetailsUpdated) notification() {}

type GroupDeleted struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	Group         ir.GroupID  `json:"group"`
}

func (GroupDeleted) Name() Name { return NameGroupDeleted }
func (GroupDeleted) notification() {}

type GroupInvitationDeclined struct {
	Group      ir.GroupSnapshot `json:"group"`
	DeclinedBy ir.CryptoID      `json:"declined_by"`
}

func (GroupInvitationDeclined) Name() Name { return NameGroupInvitationDeclined }
func (GroupInvitationDeclined) notification() {}

type GroupMembersUpdated struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupMembersUpdated) Name() Name { return NameGroupMembersUpdated }
func (GroupMembersUpdated) notification() {}

type GroupTrustedPhotoUpdated struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupTrustedPhotoUpdated) Name() Name { return NameGroupTrustedPhotoUpdated }
func (GroupTrustedPhotoUpdated) notification() {}

type GroupPublishedPhotoUpdated struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupPublishedPhotoUpdated) Name() Name { return NameGroupPublishedPhotoUpdated }
func (GroupPublishedPhotoUpdated) notification() {}

type GroupLatestPhotoUpdated struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupLatestPhotoUpdated) Name() Name { return NameGroupLatestPhotoUpdated }
func (GroupLatestPhotoUpdated) notification() {}

type GroupLatestDetailsUpdated struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupLatestDetailsUpdated) Name() Name { return NameGroupLatestDetailsUpdated }
func (GroupLatestDetailsUpdated) notification() {}

type GroupLatestDetailsDiscarded struct {
	Group ir.GroupSnapshot `json:"group"`
}

func (GroupLatestDetailsDiscarded) Name() Name { return NameGroupLatestDetailsDiscarded }
func (GroupLatestDetailsDiscarded) notification() {}

type GroupInvitationUndeclined struct {
	Group        ir.GroupSnapshot `json:"group"`
	UndeclinedBy ir.CryptoID      `json:"undeclined_by"`
}

func (GroupInvitationUndeclined) Name() Name { return NameGroupInvitationUndeclined }
func (GroupInvitationUndeclined) notification() {}

type GroupV2Deleted struct {
	OwnedIdentity      ir.CryptoID `json:"owned_identity"`
	AppGroupIdentifier []byte      `json:"app_group_identifier"`
}

func (GroupV2Deleted) Name() Name { return NameGroupV2Deleted }
func (GroupV2Deleted) notification() {}

type GroupV2UpdateFailed struct {
	OwnedIdentity      ir.CryptoID `json:"owned_identity"`
	AppGroupIdentifier []byte      `json:"app_group_identifier"`
}

func (GroupV2UpdateFailed) Name() Name { return NameGroupV2UpdateFailed }
func (GroupV2UpdateFailed) notification() {}

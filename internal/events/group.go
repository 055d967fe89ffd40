package events

import (
	"github.com/roach88/msgcore/internal/ir"
)

// NewContactGroupJoined is raised when an owned identity joins a group owned by a contact.
type NewContactGroupJoined struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (NewContactGroupJoined) Kind() Kind { return KindNewContactGroupJoined }
func (NewContactGroupJoined) event() {}

type NewContactGroupOwned struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (NewContactGroupOwned) Kind() Kind { return KindNewContactGroupOwned }
func (NewContactGroupOwned) event() {}

type ContactGroupOwnedHasUpdatedPublishedDetails struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (ContactGroupOwnedHasUpdatedPublishedDetails) Kind() Kind { return KindContactGroupOwnedHasUpdatedPublishedDetails }
func (ContactGroupOwnedHasUpdatedPublishedDetails) event() {}

type ContactGroupJoinedHasUpdatedTrustedDetails struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (ContactGroupJoinedHasUpdatedTrustedDetails) Kind() Kind { return KindContactGroupJoinedHasUpdatedTrustedDetails }
func (ContactGroupJoinedHasUpdatedTrustedDetails) event() {}

type ContactGroupDeleted struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (ContactGroupDeleted) Kind() Kind { return KindContactGroupDeleted }
func (ContactGroupDeleted) event() {}

type PendingGroupMemberDeclinedInvitation struct {
	OwnedIdentity   ir.CryptoID
	Group           ir.GroupID
	ContactIdentity ir.CryptoID
}

func (PendingGroupMemberDeclinedInvitation) Kind() Kind { return KindPendingGroupMemberDeclinedInvitation }
func (PendingGroupMemberDeclinedInvitation) event() {}

type ContactGroupHasUpdatedPendingMembersAndGroupMembers struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (ContactGroupHasUpdatedPendingMembersAndGroupMembers) Kind() Kind { return KindContactGroupHasUpdatedPendingMembersAndGroupMembers }
func (ContactGroupHasUpdatedPendingMembersAndGroupMembers) event() {}

type TrustedPhotoOfContactGroupJoinedWasUpdated struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (TrustedPhotoOfContactGroupJoinedWasUpdated) Kind() Kind { return KindTrustedPhotoOfContactGroupJoinedWasUpdated }
func (TrustedPhotoOfContactGroupJoinedWasUpdated) event() {}

type PublishedPhotoOfContactGroupWasUpdated struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (PublishedPhotoOfContactGroupWasUpdated) Kind() Kind { return KindPublishedPhotoOfContactGroupWasUpdated }
func (PublishedPhotoOfContactGroupWasUpdated) event() {}

type LatestPhotoOfContactGroupOwnedWasUpdated struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (LatestPhotoOfContactGroupOwnedWasUpdated) Kind() Kind { return KindLatestPhotoOfContactGroupOwnedWasUpdated }
func (LatestPhotoOfContactGroupOwnedWasUpdated) event() {}

type ContactGroupOwnedHasUpdatedLatestDetails struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (ContactGroupOwnedHasUpdatedLatestDetails) Kind() Kind { return KindContactGroupOwnedHasUpdatedLatestDetails }
func (ContactGroupOwnedHasUpdatedLatestDetails) event() {}

type ContactGroupOwnedDiscardedLatestDetails struct {
	OwnedIdentity ir.CryptoID
	Group         ir.GroupID
}

func (ContactGroupOwnedDiscardedLatestDetails) Kind() Kind { return KindContactGroupOwnedDiscardedLatestDetails }
func (ContactGroupOwnedDiscardedLatestDetails) event() {}

type DeclinedPendingGroupMemberWasUndeclined struct {
	OwnedIdentity   ir.CryptoID
	Group           ir.GroupID
	ContactIdentity ir.CryptoID
}

func (DeclinedPendingGroupMemberWasUndeclined) Kind() Kind { return KindDeclinedPendingGroupMemberWasUndeclined }
func (DeclinedPendingGroupMemberWasUndeclined) event() {}

type GroupV2WasDeleted struct {
	OwnedIdentity      ir.CryptoID
	AppGroupIdentifier []byte
}

func (GroupV2WasDeleted) Kind() Kind { return KindGroupV2WasDeleted }
func (GroupV2WasDeleted) event() {}

type GroupV2UpdateDidFail struct {
	OwnedIdentity      ir.CryptoID
	AppGroupIdentifier []byte
}

func (GroupV2UpdateDidFail) Kind() Kind { return KindGroupV2UpdateDidFail }
func (GroupV2UpdateDidFail) event() {}

package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/msgcore/internal/events"
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/notification"
	"github.com/roach88/msgcore/internal/store"
)

type category int

const (
	categoryPassThrough category = iota
	categoryFanOut
	categoryHydration
	categoryReceipt
)

func (c category) String() string {
	switch c {
	case categoryPassThrough:
		return "pass-through"
	case categoryFanOut:
		return "fan-out"
	case categoryHydration:
		return "hydration"
	case categoryReceipt:
		return "receipt"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// categoryOf decides which queue handles e. Only hydration events read the
// store.
func categoryOf(e events.Event) category {
	switch e.(type) {
	case events.NewReturnReceiptToProcess:
		return categoryReceipt
	case events.OutboxMessagesAndAllTheirAttachmentsWereAcknowledged,
		events.ApplicationMessagesDecrypted:
		return categoryFanOut
	case events.ContactIdentityIsNowTrusted,
		events.NewTrustedContactIdentityDetails,
		events.NewPublishedContactIdentityDetails,
		events.ContactIsActiveChanged,
		events.ContactWasRevokedAsCompromised,
		events.ContactCapabilitiesWereUpdated,
		events.TrustedPhotoOfContactWasUpdated,
		events.OwnedIdentityDetailsPublicationInProgress,
		events.OwnedIdentityCapabilitiesWereUpdated,
		events.OwnedIdentityKeycloakServerChanged,
		events.PublishedPhotoOfOwnedIdentityWasUpdated,
		events.NewContactGroupJoined,
		events.NewContactGroupOwned,
		events.ContactGroupOwnedHasUpdatedPublishedDetails,
		events.ContactGroupJoinedHasUpdatedTrustedDetails,
		events.PendingGroupMemberDeclinedInvitation,
		events.NewConfirmedObliviousChannel,
		events.DeletedConfirmedObliviousChannel,
		events.MutualScanContactAdded,
		events.ContactWasUpdatedWithinTheIdentityManager,
		events.PublishedPhotoOfContactWasUpdated,
		events.NewContactDevice,
		events.UpdatedContactDevice,
		events.NewRemoteOwnedDevice,
		events.AnOwnedDeviceWasUpdated,
		events.AnOwnedDeviceWasDeleted,
		events.ContactGroupHasUpdatedPendingMembersAndGroupMembers,
		events.TrustedPhotoOfContactGroupJoinedWasUpdated,
		events.PublishedPhotoOfContactGroupWasUpdated,
		events.LatestPhotoOfContactGroupOwnedWasUpdated,
		events.ContactGroupOwnedHasUpdatedLatestDetails,
		events.ContactGroupOwnedDiscardedLatestDetails,
		events.DeclinedPendingGroupMemberWasUndeclined,
		events.NewConfirmedObliviousChannelWithOwnedDevice,
		events.DeletedConfirmedObliviousChannelWithOwnedDevice:
		return categoryHydration
	default:
		return categoryPassThrough
	}
}

// translate maps one engine event to its external notification. tx is nil
// for every category but hydration; a hydrating case reached without one
// fails with errNoTransaction.
func (r *Router) translate(ctx context.Context, tx *store.Tx, e events.Event) (notification.Notification, error) {
	switch e := e.(type) {
	case events.OutboxMessageWasUploaded:
		return notification.MessageWasUploaded{MessageID: e.MessageID, TimestampFromServer: e.TimestampFromServer, IsAppMessageWithUserContent: e.IsAppMessageWithUserContent, IsVoipMessage: e.IsVoipMessage}, nil
	case events.OutboxMessagesAndAllTheirAttachmentsWereAcknowledged:
		return notification.MessagesWereAcknowledged{Acks: e.Acks}, nil
	case events.OutboxAttachmentWasAcknowledged:
		return notification.AttachmentWasAcknowledgedByServer{AttachmentID: e.AttachmentID}, nil
	case events.OutboxAttachmentHasNewProgress:
		return notification.OutboxAttachmentProgress{AttachmentID: e.AttachmentID, CompletedBytes: e.CompletedBytes, TotalBytes: e.TotalBytes}, nil
	case events.OutboxMessageCouldNotBeSentToServer:
		return notification.MessageCouldNotBeSent{MessageID: e.MessageID}, nil
	case events.InboxAttachmentWasDownloaded:
		return notification.AttachmentDownloaded{AttachmentID: e.AttachmentID}, nil
	case events.InboxAttachmentHasNewProgress:
		return notification.InboxAttachmentProgress{AttachmentID: e.AttachmentID, CompletedBytes: e.CompletedBytes, TotalBytes: e.TotalBytes}, nil
	case events.InboxAttachmentDownloadCancelledByServer:
		return notification.AttachmentDownloadCancelledByServer{AttachmentID: e.AttachmentID}, nil
	case events.NewReturnReceiptToProcess:
		return notification.NewReturnReceiptToProcess{Receipt: e.Receipt}, nil
	case events.TurnCredentialsReceived:
		return notification.CallTurnCredentialsReceived{OwnedIdentity: e.OwnedIdentity, CallUUID: e.CallUUID, Username: e.Username, Password: e.Password, Servers: e.Servers}, nil
	case events.TurnCredentialsReceptionFailure:
		return notification.CallTurnCredentialsReceptionFailure{OwnedIdentity: e.OwnedIdentity, CallUUID: e.CallUUID}, nil
	case events.TurnCredentialsReceptionPermissionDenied:
		return notification.CallTurnCredentialsReceptionPermissionDenied{OwnedIdentity: e.OwnedIdentity, CallUUID: e.CallUUID}, nil
	case events.TurnCredentialServerDoesNotSupportCalls:
		return notification.CallTurnServerDoesNotSupportCalls{OwnedIdentity: e.OwnedIdentity, CallUUID: e.CallUUID}, nil
	case events.APIKeyStatusQueryFailed:
		return notification.APIKeyStatusQueryFailed{OwnedIdentity: e.OwnedIdentity, APIKey: e.APIKey}, nil
	case events.FreeTrialIsStillAvailableForOwnedIdentity:
		return notification.FreeTrialIsStillAvailable{OwnedIdentity: e.OwnedIdentity}, nil
	case events.NoMoreFreeTrialAPIKeyAvailableForOwnedIdentity:
		return notification.NoMoreFreeTrialAvailable{OwnedIdentity: e.OwnedIdentity}, nil
	case events.AppStoreReceiptVerificationFailed:
		return notification.AppStoreReceiptVerificationFailed{OwnedIdentity: e.OwnedIdentity, TransactionID: e.TransactionID}, nil
	case events.WellKnownHasBeenUpdated:
		return notification.WellKnownUpdated{ServerURL: e.ServerURL}, nil
	case events.ContactIdentityIsNowTrusted:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.NewTrustedContactIdentity{Contact: c}, nil
	case events.NewTrustedContactIdentityDetails:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ContactTrustedDetailsUpdated{Contact: c}, nil
	case events.NewPublishedContactIdentityDetails:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ContactPublishedDetailsUpdated{Contact: c}, nil
	case events.ContactIsActiveChanged:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ContactActivityChanged{Contact: c}, nil
	case events.ContactWasRevokedAsCompromised:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ContactRevokedAsCompromised{Contact: c}, nil
	case events.ContactCapabilitiesWereUpdated:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ContactCapabilitiesUpdated{Contact: c}, nil
	case events.TrustedPhotoOfContactWasUpdated:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ContactTrustedPhotoUpdated{Contact: c}, nil
	case events.ContactWasDeleted:
		return notification.ContactWasDeleted{OwnedIdentity: e.OwnedIdentity, ContactIdentity: e.ContactIdentity}, nil
	case events.OwnedIdentityDetailsPublicationInProgress:
		o, err := r.ownedIdentity(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.OwnedIdentityPublicationInProgress{Owned: o}, nil
	case events.OwnedIdentityCapabilitiesWereUpdated:
		o, err := r.ownedIdentity(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.OwnedIdentityCapabilitiesUpdated{Owned: o}, nil
	case events.OwnedIdentityKeycloakServerChanged:
		o, err := r.ownedIdentity(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.OwnedIdentityKeycloakServerChanged{Owned: o}, nil
	case events.PublishedPhotoOfOwnedIdentityWasUpdated:
		o, err := r.ownedIdentity(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.OwnedIdentityPublishedPhotoUpdated{Owned: o}, nil
	case events.OwnedIdentityWasDeactivated:
		return notification.OwnedIdentityWasDeactivated{OwnedIdentity: e.OwnedIdentity}, nil
	case events.OwnedIdentityWasReactivated:
		return notification.OwnedIdentityWasReactivated{OwnedIdentity: e.OwnedIdentity}, nil
	case events.NewContactGroupJoined:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupJoined{Group: g}, nil
	case events.NewContactGroupOwned:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupCreated{Group: g}, nil
	case events.ContactGroupOwnedHasUpdatedPublishedDetails:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupPublishedDetailsUpdated{Group: g}, nil
	case events.ContactGroupJoinedHasUpdatedTrustedDetails:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupTrustedDetailsUpdated{Group: g}, nil
	case events.ContactGroupDeleted:
		return notification.GroupDeleted{OwnedIdentity: e.OwnedIdentity, Group: e.Group}, nil
	case events.PendingGroupMemberDeclinedInvitation:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupInvitationDeclined{Group: g, DeclinedBy: e.ContactIdentity}, nil
	case events.NewConfirmedObliviousChannel:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ChannelEstablished{Contact: c, RemoteDeviceUID: e.RemoteDeviceUID}, nil
	case events.DeletedConfirmedObliviousChannel:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ChannelDeleted{Contact: c, RemoteDeviceUID: e.RemoteDeviceUID}, nil
	case events.MutualScanContactAdded:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.MutualScanContactAdded{Contact: c, Signature: e.Signature}, nil
	case events.NewUserDialogToPresent:
		return notification.NewUserDialog{OwnedIdentity: e.OwnedIdentity, DialogUUID: e.DialogUUID, Category: e.Category}, nil
	case events.UserDialogToDelete:
		return notification.UserDialogDeleted{OwnedIdentity: e.OwnedIdentity, DialogUUID: e.DialogUUID}, nil
	case events.BackupForExportWasFinished:
		return notification.BackupForExportFinished{BackupKeyUID: e.BackupKeyUID, Version: e.Version, EncryptedContentSize: e.EncryptedContentSize}, nil
	case events.BackupForUploadWasFinished:
		return notification.BackupForUploadFinished{BackupKeyUID: e.BackupKeyUID, Version: e.Version, EncryptedContentSize: e.EncryptedContentSize}, nil
	case events.BackupFailed:
		return notification.BackupFailed{BackupKeyUID: e.BackupKeyUID, Version: e.Version}, nil
	case events.NetworkOperationFailedSinceOwnedIdentityIsNotActive:
		return notification.NetworkOperationFailedSinceOwnedIdentityIsNotActive{OwnedIdentity: e.OwnedIdentity}, nil
	case events.ServerRequiresThisDeviceToRegisterToPushNotifications:
		return notification.ServerRequiresPushRegistration{}, nil
	case events.WellKnownHasBeenDownloaded:
		return notification.WellKnownDownloaded{ServerURL: e.ServerURL}, nil
	case events.WellKnownDownloadFailure:
		return notification.WellKnownDownloadFailed{ServerURL: e.ServerURL}, nil
	case events.CannotReturnAnyProgressForMessageAttachments:
		return notification.CannotReturnAttachmentProgress{MessageID: e.MessageID}, nil
	case events.ApplicationMessagesDecrypted:
		return notification.NewMessagesReceived{MessageIDs: e.MessageIDs}, nil
	case events.DownloadingMessageExtendedPayloadWasPerformed:
		return notification.MessageExtendedPayloadAvailable{MessageID: e.MessageID}, nil
	case events.InboxAttachmentDownloadWasResumed:
		return notification.AttachmentDownloadResumed{AttachmentID: e.AttachmentID}, nil
	case events.InboxAttachmentDownloadWasPaused:
		return notification.AttachmentDownloadPaused{AttachmentID: e.AttachmentID}, nil
	case events.OwnedAttachmentWasDownloaded:
		return notification.OwnedAttachmentDownloaded{AttachmentID: e.AttachmentID}, nil
	case events.OwnedAttachmentDownloadWasResumed:
		return notification.OwnedAttachmentDownloadResumed{AttachmentID: e.AttachmentID}, nil
	case events.OwnedAttachmentDownloadWasPaused:
		return notification.OwnedAttachmentDownloadPaused{AttachmentID: e.AttachmentID}, nil
	case events.OwnedAttachmentDownloadCancelledByServer:
		return notification.OwnedAttachmentDownloadCancelledByServer{AttachmentID: e.AttachmentID}, nil
	case events.PushTopicReceivedViaWebsocket:
		return notification.PushTopicReceived{PushTopic: e.PushTopic}, nil
	case events.KeycloakTargetedPushNotificationReceivedViaWebsocket:
		return notification.KeycloakTargetedPushNotificationReceived{OwnedIdentity: e.OwnedIdentity}, nil
	case events.NewAPIKeyElementsForCurrentAPIKey:
		return notification.NewAPIKeyElements{OwnedIdentity: e.OwnedIdentity, Status: e.Status, Permissions: e.Permissions, ExpiresAt: e.ExpiresAt}, nil
	case events.ContactWasUpdatedWithinTheIdentityManager:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ContactUpdated{Contact: c}, nil
	case events.PublishedPhotoOfContactWasUpdated:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.ContactPublishedPhotoUpdated{Contact: c}, nil
	case events.NewContactDevice:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.NewContactDevice{Contact: c, DeviceUID: e.DeviceUID}, nil
	case events.UpdatedContactDevice:
		c, err := r.contact(ctx, tx, e.OwnedIdentity, e.ContactIdentity)
		if err != nil {
			return nil, err
		}
		return notification.UpdatedContactDevice{Contact: c, DeviceUID: e.DeviceUID}, nil
	case events.NewRemoteOwnedDevice:
		o, err := r.ownedDevices(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.NewRemoteOwnedDevice{Owned: o, DeviceUID: e.DeviceUID}, nil
	case events.AnOwnedDeviceWasUpdated:
		o, err := r.ownedDevices(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.OwnedDeviceUpdated{Owned: o}, nil
	case events.AnOwnedDeviceWasDeleted:
		o, err := r.ownedDevices(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.OwnedDeviceDeleted{Owned: o}, nil
	case events.OwnedIdentityWasDeleted:
		return notification.OwnedIdentityWasDeleted{OwnedIdentity: e.OwnedIdentity}, nil
	case events.OwnedIdentityRequiresPushRegistration:
		return notification.OwnedIdentityMustRegisterToPush{OwnedIdentity: e.OwnedIdentity, PerformOwnedDeviceDiscoveryOnFinish: e.PerformOwnedDeviceDiscoveryOnFinish}, nil
	case events.ContactGroupHasUpdatedPendingMembersAndGroupMembers:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupMembersUpdated{Group: g}, nil
	case events.TrustedPhotoOfContactGroupJoinedWasUpdated:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupTrustedPhotoUpdated{Group: g}, nil
	case events.PublishedPhotoOfContactGroupWasUpdated:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupPublishedPhotoUpdated{Group: g}, nil
	case events.LatestPhotoOfContactGroupOwnedWasUpdated:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupLatestPhotoUpdated{Group: g}, nil
	case events.ContactGroupOwnedHasUpdatedLatestDetails:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupLatestDetailsUpdated{Group: g}, nil
	case events.ContactGroupOwnedDiscardedLatestDetails:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupLatestDetailsDiscarded{Group: g}, nil
	case events.DeclinedPendingGroupMemberWasUndeclined:
		g, err := r.group(ctx, tx, e.OwnedIdentity, e.Group)
		if err != nil {
			return nil, err
		}
		return notification.GroupInvitationUndeclined{Group: g, UndeclinedBy: e.ContactIdentity}, nil
	case events.GroupV2WasDeleted:
		return notification.GroupV2Deleted{OwnedIdentity: e.OwnedIdentity, AppGroupIdentifier: e.AppGroupIdentifier}, nil
	case events.GroupV2UpdateDidFail:
		return notification.GroupV2UpdateFailed{OwnedIdentity: e.OwnedIdentity, AppGroupIdentifier: e.AppGroupIdentifier}, nil
	case events.KeycloakSynchronizationRequired:
		return notification.KeycloakSynchronizationRequired{OwnedIdentity: e.OwnedIdentity}, nil
	case events.ContactIntroductionInvitationSent:
		return notification.ContactIntroductionInvitationSent{OwnedIdentity: e.OwnedIdentity, ContactIdentityA: e.ContactIdentityA, ContactIdentityB: e.ContactIdentityB}, nil
	case events.OwnedIdentityTransferProtocolFailed:
		return notification.OwnedIdentityTransferFailed{OwnedIdentity: e.OwnedIdentity, ProtocolInstanceUID: e.ProtocolInstanceUID, Reason: e.Reason}, nil
	case events.NewConfirmedObliviousChannelWithOwnedDevice:
		o, err := r.ownedDevices(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.OwnedDeviceChannelEstablished{Owned: o, RemoteDeviceUID: e.RemoteDeviceUID}, nil
	case events.DeletedConfirmedObliviousChannelWithOwnedDevice:
		o, err := r.ownedDevices(ctx, tx, e.OwnedIdentity)
		if err != nil {
			return nil, err
		}
		return notification.OwnedDeviceChannelDeleted{Owned: o, RemoteDeviceUID: e.RemoteDeviceUID}, nil
	default:
		return nil, fmt.Errorf("%w: %T", errUnmapped, e)
	}
}

// errNoTransaction means a hydrating event reached a queue that reads no
// store.
var errNoTransaction = errors.New("hydration outside a read transaction")

func (r *Router) contact(ctx context.Context, tx *store.Tx, owned, contact ir.CryptoID) (ir.ContactSnapshot, error) {
	if tx == nil {
		return ir.ContactSnapshot{}, errNoTransaction
	}
	return r.identities.Contact(ctx, tx, owned, contact)
}

func (r *Router) ownedIdentity(ctx context.Context, tx *store.Tx, owned ir.CryptoID) (ir.OwnedIdentitySnapshot, error) {
	if tx == nil {
		return ir.OwnedIdentitySnapshot{}, errNoTransaction
	}
	return r.identities.OwnedIdentity(ctx, tx, owned)
}

func (r *Router) ownedDevices(ctx context.Context, tx *store.Tx, owned ir.CryptoID) (ir.OwnedDevicesSnapshot, error) {
	if tx == nil {
		return ir.OwnedDevicesSnapshot{}, errNoTransaction
	}
	return r.identities.OwnedDevices(ctx, tx, owned)
}

func (r *Router) group(ctx context.Context, tx *store.Tx, owned ir.CryptoID, group ir.GroupID) (ir.GroupSnapshot, error) {
	if tx == nil {
		return ir.GroupSnapshot{}, errNoTransaction
	}
	return r.identities.Group(ctx, tx, owned, group)
}

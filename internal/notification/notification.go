package notification

import (
	"github.com/roach88/msgcore/internal/ir"
)

// Name is the stable, versioned identifier of a notification variant.
type Name string

// Notification names. These are part of the external contract; never rename.
const (
	NameMessageWasUploaded                                  Name = "messageWasUploaded"
	NameMessagesWereAcknowledged                            Name = "messagesWereAcknowledged"
	NameAttachmentWasAcknowledgedByServer                   Name = "attachmentWasAcknowledgedByServer"
	NameOutboxAttachmentProgress                            Name = "outboxAttachmentProgress"
	NameMessageCouldNotBeSent                               Name = "messageCouldNotBeSent"
	NameAttachmentDownloaded                                Name = "attachmentDownloaded"
	NameInboxAttachmentProgress                             Name = "inboxAttachmentProgress"
	NameAttachmentDownloadCancelledByServer                 Name = "attachmentDownloadCancelledByServer"
	NameNewReturnReceiptToProcess                           Name = "newReturnReceiptToProcess"
	NameCallTurnCredentialsReceived                         Name = "callTurnCredentialsReceived"
	NameCallTurnCredentialsReceptionFailure                 Name = "callTurnCredentialsReceptionFailure"
	NameCallTurnCredentialsReceptionPermissionDenied        Name = "callTurnCredentialsReceptionPermissionDenied"
	NameCallTurnServerDoesNotSupportCalls                   Name = "callTurnServerDoesNotSupportCalls"
	NameAPIKeyStatusQueryFailed                             Name = "apiKeyStatusQueryFailed"
	NameFreeTrialIsStillAvailable                           Name = "freeTrialIsStillAvailable"
	NameNoMoreFreeTrialAvailable                            Name = "noMoreFreeTrialAvailable"
	NameAppStoreReceiptVerificationFailed                   Name = "appStoreReceiptVerificationFailed"
	NameWellKnownUpdated                                    Name = "wellKnownUpdated"
	NameNewTrustedContactIdentity                           Name = "newTrustedContactIdentity"
	NameContactTrustedDetailsUpdated                        Name = "contactTrustedDetailsUpdated"
	NameContactPublishedDetailsUpdated                      Name = "contactPublishedDetailsUpdated"
	NameContactActivityChanged                              Name = "contactActivityChanged"
	NameContactRevokedAsCompromised                         Name = "contactRevokedAsCompromised"
	NameContactCapabilitiesUpdated                          Name = "contactCapabilitiesUpdated"
	NameContactTrustedPhotoUpdated                          Name = "contactTrustedPhotoUpdated"
	NameContactWasDeleted                                   Name = "contactWasDeleted"
	NameOwnedIdentityPublicationInProgress                  Name = "ownedIdentityPublicationInProgress"
	NameOwnedIdentityCapabilitiesUpdated                    Name = "ownedIdentityCapabilitiesUpdated"
	NameOwnedIdentityKeycloakServerChanged                  Name = "ownedIdentityKeycloakServerChanged"
	NameOwnedIdentityPublishedPhotoUpdated                  Name = "ownedIdentityPublishedPhotoUpdated"
	NameOwnedIdentityWasDeactivated                         Name = "ownedIdentityWasDeactivated"
	NameOwnedIdentityWasReactivated                         Name = "ownedIdentityWasReactivated"
	NameGroupJoined                                         Name = "groupJoined"
	NameGroupCreated                                        Name = "groupCreated"
	NameGroupPublishedDetailsUpdated                        Name = "groupPublishedDetailsUpdated"
	NameGroupTrustedDetailsUpdated                          Name = "groupTrustedDetailsUpdated"
	NameGroupDeleted                                        Name = "groupDeleted"
	NameGroupInvitationDeclined                             Name = "groupInvitationDeclined"
	NameChannelEstablished                                  Name = "channelEstablished"
	NameChannelDeleted                                      Name = "channelDeleted"
	NameMutualScanContactAdded                              Name = "mutualScanContactAdded"
	NameNewUserDialog                                       Name = "newUserDialog"
	NameUserDialogDeleted                                   Name = "userDialogDeleted"
	NameBackupForExportFinished                             Name = "backupForExportFinished"
	NameBackupForUploadFinished                             Name = "backupForUploadFinished"
	NameBackupFailed                                        Name = "backupFailed"
	NameNetworkOperationFailedSinceOwnedIdentityIsNotActive Name = "networkOperationFailedSinceOwnedIdentityIsNotActive"
	NameServerRequiresPushRegistration                      Name = "serverRequiresAllActiveOwnedIdentitiesToRegisterToPushNotifications"
	NameWellKnownDownloaded                                 Name = "wellKnownDownloaded"
	NameWellKnownDownloadFailed                             Name = "wellKnownDownloadFailed"
	NameCannotReturnAttachmentProgress                      Name = "cannotReturnAnyProgressForMessageAttachments"
	NameNewMessagesReceived                                 Name = "newMessagesReceived"
	NameMessageExtendedPayloadAvailable                     Name = "messageExtendedPayloadAvailable"
	NameAttachmentDownloadResumed                           Name = "attachmentDownloadWasResumed"
	NameAttachmentDownloadPaused                            Name = "attachmentDownloadWasPaused"
	NameOwnedAttachmentDownloaded                           Name = "ownedAttachmentDownloaded"
	NameOwnedAttachmentDownloadResumed                      Name = "ownedAttachmentDownloadWasResumed"
	NameOwnedAttachmentDownloadPaused                       Name = "ownedAttachmentDownloadWasPaused"
	NameOwnedAttachmentDownloadCancelledByServer            Name = "ownedAttachmentDownloadCancelledByServer"
	NamePushTopicReceived                                   Name = "pushTopicReceivedViaWebsocket"
	NameKeycloakTargetedPushNotificationReceived            Name = "keycloakTargetedPushNotificationReceived"
	NameNewAPIKeyElements                                   Name = "newAPIKeyElements"
	NameContactUpdated                                      Name = "contactUpdated"
	NameContactPublishedPhotoUpdated                        Name = "contactPublishedPhotoUpdated"
	NameNewContactDevice                                    Name = "newContactDevice"
	NameUpdatedContactDevice                                Name = "updatedContactDevice"
	NameNewRemoteOwnedDevice                                Name = "newRemoteOwnedDevice"
	NameOwnedDeviceUpdated                                  Name = "anOwnedDeviceWasUpdated"
	NameOwnedDeviceDeleted                                  Name = "anOwnedDeviceWasDeleted"
	NameOwnedIdentityWasDeleted                             Name = "ownedIdentityWasDeleted"
	NameOwnedIdentityMustRegisterToPush                     Name = "engineRequiresOwnedIdentityToRegisterToPushNotifications"
	NameGroupMembersUpdated                                 Name = "groupMembersUpdated"
	NameGroupTrustedPhotoUpdated                            Name = "groupTrustedPhotoUpdated"
	NameGroupPublishedPhotoUpdated                          Name = "groupPublishedPhotoUpdated"
	NameGroupLatestPhotoUpdated                             Name = "groupLatestPhotoUpdated"
	NameGroupLatestDetailsUpdated                           Name = "groupLatestDetailsUpdated"
	NameGroupLatestDetailsDiscarded                         Name = "groupLatestDetailsDiscarded"
	NameGroupInvitationUndeclined                           Name = "groupInvitationUndeclined"
	NameGroupV2Deleted                                      Name = "groupV2WasDeleted"
	NameGroupV2UpdateFailed                                 Name = "groupV2UpdateDidFail"
	NameKeycloakSynchronizationRequired                     Name = "keycloakSynchronizationRequired"
	NameContactIntroductionInvitationSent                   Name = "contactIntroductionInvitationSent"
	NameOwnedIdentityTransferFailed                         Name = "ownedIdentityTransferFailed"
	NameOwnedDeviceChannelEstablished                       Name = "ownedDeviceChannelEstablished"
	NameOwnedDeviceChannelDeleted                           Name = "ownedDeviceChannelDeleted"
)

var allNames = []Name{
	NameMessageWasUploaded,
	NameMessagesWereAcknowledged,
	NameAttachmentWasAcknowledgedByServer,
	NameOutboxAttachmentProgress,
	NameMessageCouldNotBeSent,
	NameAttachmentDownloaded,
	NameInboxAttachmentProgress,
	NameAttachmentDownloadCancelledByServer,
	NameNewReturnReceiptToProcess,
	NameCallTurnCredentialsReceived,
	NameCallTurnCredentialsReceptionFailure,
	NameCallTurnCredentialsReceptionPermissionDenied,
	NameCallTurnServerDoesNotSupportCalls,
	NameAPIKeyStatusQueryFailed,
	NameFreeTrialIsStillAvailable,
	NameNoMoreFreeTrialAvailable,
	NameAppStoreReceiptVerificationFailed,
	NameWellKnownUpdated,
	NameNewTrustedContactIdentity,
	NameContactTrustedDetailsUpdated,
	NameContactPublishedDetailsUpdated,
	NameContactActivityChanged,
	NameContactRevokedAsCompromised,
	NameContactCapabilitiesUpdated,
	NameContactTrustedPhotoUpdated,
	NameContactWasDeleted,
	NameOwnedIdentityPublicationInProgress,
	NameOwnedIdentityCapabilitiesUpdated,
	NameOwnedIdentityKeycloakServerChanged,
	NameOwnedIdentityPublishedPhotoUpdated,
	NameOwnedIdentityWasDeactivated,
	NameOwnedIdentityWasReactivated,
	NameGroupJoined,
	NameGroupCreated,
	NameGroupPublishedDetailsUpdated,
	NameGroupTrustedDetailsUpdated,
	NameGroupDeleted,
	NameGroupInvitationDeclined,
	NameChannelEstablished,
	NameChannelDeleted,
	NameMutualScanContactAdded,
	NameNewUserDialog,
	NameUserDialogDeleted,
	NameBackupForExportFinished,
	NameBackupForUploadFinished,
	NameBackupFailed,
	NameNetworkOperationFailedSinceOwnedIdentityIsNotActive,
	NameServerRequiresPushRegistration,
	NameWellKnownDownloaded,
	NameWellKnownDownloadFailed,
	NameCannotReturnAttachmentProgress,
	NameNewMessagesReceived,
	NameMessageExtendedPayloadAvailable,
	NameAttachmentDownloadResumed,
	NameAttachmentDownloadPaused,
	NameOwnedAttachmentDownloaded,
	NameOwnedAttachmentDownloadResumed,
	NameOwnedAttachmentDownloadPaused,
	NameOwnedAttachmentDownloadCancelledByServer,
	NamePushTopicReceived,
	NameKeycloakTargetedPushNotificationReceived,
	NameNewAPIKeyElements,
	NameContactUpdated,
	NameContactPublishedPhotoUpdated,
	NameNewContactDevice,
	NameUpdatedContactDevice,
	NameNewRemoteOwnedDevice,
	NameOwnedDeviceUpdated,
	NameOwnedDeviceDeleted,
	NameOwnedIdentityWasDeleted,
	NameOwnedIdentityMustRegisterToPush,
	NameGroupMembersUpdated,
	NameGroupTrustedPhotoUpdated,
	NameGroupPublishedPhotoUpdated,
	NameGroupLatestPhotoUpdated,
	NameGroupLatestDetailsUpdated,
	NameGroupLatestDetailsDiscarded,
	NameGroupInvitationUndeclined,
	NameGroupV2Deleted,
	NameGroupV2UpdateFailed,
	NameKeycloakSynchronizationRequired,
	NameContactIntroductionInvitationSent,
	NameOwnedIdentityTransferFailed,
	NameOwnedDeviceChannelEstablished,
	NameOwnedDeviceChannelDeleted,
}

// Notification is delivered to the application layer. The set of
// implementations is closed: only types in this package can satisfy it.
type Notification interface {
	Name() Name
	notification()
}

// Names returns every notification name in declaration order.
func Names() []Name {
	out := make([]Name, len(allNames))
	copy(out, allNames)
	return out
}

// Envelope is the wire shape used when a notification leaves the process.
type Envelope struct {
	Name    Name         `json:"name"`
	Version int          `json:"version"`
	Payload Notification `json:"payload"`
}

// Encode returns the canonical JSON envelope of n.
func Encode(n Notification) ([]byte, error) {
	return ir.CanonicalizeStruct(Envelope{
		Name:    n.Name(),
		Version: ir.NotificationVersion,
		Payload: n,
	})
}

package events

import "fmt"

// Kind enumerates every EngineEvent variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindOutboxMessageWasUploaded
	KindOutboxMessagesAndAllTheirAttachmentsWereAcknowledged
	KindOutboxAttachmentWasAcknowledged
	KindOutboxAttachmentHasNewProgress
	KindOutboxMessageCouldNotBeSentToServer
	KindInboxAttachmentWasDownloaded
	KindInboxAttachmentHasNewProgress
	KindInboxAttachmentDownloadCancelledByServer
	KindNewReturnReceiptToProcess
	KindTurnCredentialsReceived
	KindTurnCredentialsReceptionFailure
	KindTurnCredentialsReceptionPermissionDenied
	KindTurnCredentialServerDoesNotSupportCalls
	KindAPIKeyStatusQueryFailed
	KindFreeTrialIsStillAvailableForOwnedIdentity
	KindNoMoreFreeTrialAPIKeyAvailableForOwnedIdentity
	KindAppStoreReceiptVerificationFailed
	KindWellKnownHasBeenUpdated
	KindContactIdentityIsNowTrusted
	KindNewTrustedContactIdentityDetails
	KindNewPublishedContactIdentityDetails
	KindContactIsActiveChanged
	KindContactWasRevokedAsCompromised
	KindContactCapabilitiesWereUpdated
	KindTrustedPhotoOfContactWasUpdated
	KindContactWasDeleted
	KindOwnedIdentityDetailsPublicationInProgress
	KindOwnedIdentityCapabilitiesWereUpdated
	KindOwnedIdentityKeycloakServerChanged
	KindPublishedPhotoOfOwnedIdentityWasUpdated
	KindOwnedIdentityWasDeactivated
	KindOwnedIdentityWasReactivated
	KindNewContactGroupJoined
	KindNewContactGroupOwned
	KindContactGroupOwnedHasUpdatedPublishedDetails
	KindContactGroupJoinedHasUpdatedTrustedDetails
	KindContactGroupDeleted
	KindPendingGroupMemberDeclinedInvitation
	KindNewConfirmedObliviousChannel
	KindDeletedConfirmedObliviousChannel
	KindMutualScanContactAdded
	KindNewUserDialogToPresent
	KindUserDialogToDelete
	KindBackupForExportWasFinished
	KindBackupForUploadWasFinished
	KindBackupFailed
	KindNetworkOperationFailedSinceOwnedIdentityIsNotActive
	KindServerRequiresThisDeviceToRegisterToPushNotifications
	KindWellKnownHasBeenDownloaded
	KindWellKnownDownloadFailure
	KindCannotReturnAnyProgressForMessageAttachments
	KindApplicationMessagesDecrypted
	KindDownloadingMessageExtendedPayloadWasPerformed
	KindInboxAttachmentDownloadWasResumed
	KindInboxAttachmentDownloadWasPaused
	KindOwnedAttachmentWasDownloaded
	KindOwnedAttachmentDownloadWasResumed
	KindOwnedAttachmentDownloadWasPaused
	KindOwnedAttachmentDownloadCancelledByServer
	KindPushTopicReceivedViaWebsocket
	KindKeycloakTargetedPushNotificationReceivedViaWebsocket
	KindNewAPIKeyElementsForCurrentAPIKey
	KindContactWasUpdatedWithinTheIdentityManager
	KindPublishedPhotoOfContactWasUpdated
	KindNewContactDevice
	KindUpdatedContactDevice
	KindNewRemoteOwnedDevice
	KindAnOwnedDeviceWasUpdated
	KindAnOwnedDeviceWasDeleted
	KindOwnedIdentityWasDeleted
	KindOwnedIdentityRequiresPushRegistration
	KindContactGroupHasUpdatedPendingMembersAndGroupMembers
	KindTrustedPhotoOfContactGroupJoinedWasUpdated
	KindPublishedPhotoOfContactGroupWasUpdated
	KindLatestPhotoOfContactGroupOwnedWasUpdated
	KindContactGroupOwnedHasUpdatedLatestDetails
	KindContactGroupOwnedDiscardedLatestDetails
	KindDeclinedPendingGroupMemberWasUndeclined
	KindGroupV2WasDeleted
	KindGroupV2UpdateDidFail
	KindKeycloakSynchronizationRequired
	KindContactIntroductionInvitationSent
	KindOwnedIdentityTransferProtocolFailed
	KindNewConfirmedObliviousChannelWithOwnedDevice
	KindDeletedConfirmedObliviousChannelWithOwnedDevice
)

var kindNames = map[Kind]string{
	KindOutboxMessageWasUploaded:                              "OutboxMessageWasUploaded",
	KindOutboxMessagesAndAllTheirAttachmentsWereAcknowledged:  "OutboxMessagesAndAllTheirAttachmentsWereAcknowledged",
	KindOutboxAttachmentWasAcknowledged:                       "OutboxAttachmentWasAcknowledged",
	KindOutboxAttachmentHasNewProgress:                        "OutboxAttachmentHasNewProgress",
	KindOutboxMessageCouldNotBeSentToServer:                   "OutboxMessageCouldNotBeSentToServer",
	KindInboxAttachmentWasDownloaded:                          "InboxAttachmentWasDownloaded",
	KindInboxAttachmentHasNewProgress:                         "InboxAttachmentHasNewProgress",
	KindInboxAttachmentDownloadCancelledByServer:              "InboxAttachmentDownloadCancelledByServer",
	KindNewReturnReceiptToProcess:                             "NewReturnReceiptToProcess",
	KindTurnCredentialsReceived:                               "TurnCredentialsReceived",
	KindTurnCredentialsReceptionFailure:                       "TurnCredentialsReceptionFailure",
	KindTurnCredentialsReceptionPermissionDenied:              "TurnCredentialsReceptionPermissionDenied",
	KindTurnCredentialServerDoesNotSupportCalls:               "TurnCredentialServerDoesNotSupportCalls",
	KindAPIKeyStatusQueryFailed:                               "APIKeyStatusQueryFailed",
	KindFreeTrialIsStillAvailableForOwnedIdentity:             "FreeTrialIsStillAvailableForOwnedIdentity",
	KindNoMoreFreeTrialAPIKeyAvailableForOwnedIdentity:        "NoMoreFreeTrialAPIKeyAvailableForOwnedIdentity",
	KindAppStoreReceiptVerificationFailed:                     "AppStoreReceiptVerificationFailed",
	KindWellKnownHasBeenUpdated:                               "WellKnownHasBeenUpdated",
	KindContactIdentityIsNowTrusted:                           "ContactIdentityIsNowTrusted",
	KindNewTrustedContactIdentityDetails:                      "NewTrustedContactIdentityDetails",
	KindNewPublishedContactIdentityDetails:                    "NewPublishedContactIdentityDetails",
	KindContactIsActiveChanged:                                "ContactIsActiveChanged",
	KindContactWasRevokedAsCompromised:                        "ContactWasRevokedAsCompromised",
	KindContactCapabilitiesWereUpdated:                        "ContactCapabilitiesWereUpdated",
	KindTrustedPhotoOfContactWasUpdated:                       "TrustedPhotoOfContactWasUpdated",
	KindContactWasDeleted:                                     "ContactWasDeleted",
	KindOwnedIdentityDetailsPublicationInProgress:             "OwnedIdentityDetailsPublicationInProgress",
	KindOwnedIdentityCapabilitiesWereUpdated:                  "OwnedIdentityCapabilitiesWereUpdated",
	KindOwnedIdentityKeycloakServerChanged:                    "OwnedIdentityKeycloakServerChanged",
	KindPublishedPhotoOfOwnedIdentityWasUpdated:               "PublishedPhotoOfOwnedIdentityWasUpdated",
	KindOwnedIdentityWasDeactivated:                           "OwnedIdentityWasDeactivated",
	KindOwnedIdentityWasReactivated:                           "OwnedIdentityWasReactivated",
	KindNewContactGroupJoined:                                 "NewContactGroupJoined",
	KindNewContactGroupOwned:                                  "NewContactGroupOwned",
	KindContactGroupOwnedHasUpdatedPublishedDetails:           "ContactGroupOwnedHasUpdatedPublishedDetails",
	KindContactGroupJoinedHasUpdatedTrustedDetails:            "ContactGroupJoinedHasUpdatedTrustedDetails",
	KindContactGroupDeleted:                                   "ContactGroupDeleted",
	KindPendingGroupMemberDeclinedInvitation:                  "PendingGroupMemberDeclinedInvitation",
	KindNewConfirmedObliviousChannel:                          "NewConfirmedObliviousChannel",
	KindDeletedConfirmedObliviousChannel:                      "DeletedConfirmedObliviousChannel",
	KindMutualScanContactAdded:                                "MutualScanContactAdded",
	KindNewUserDialogToPresent:                                "NewUserDialogToPresent",
	KindUserDialogToDelete:                                    "UserDialogToDelete",
	KindBackupForExportWasFinished:                            "BackupForExportWasFinished",
	KindBackupForUploadWasFinished:                            "BackupForUploadWasFinished",
	KindBackupFailed:                                          "BackupFailed",
	KindNetworkOperationFailedSinceOwnedIdentityIsNotActive:   "NetworkOperationFailedSinceOwnedIdentityIsNotActive",
	KindServerRequiresThisDeviceToRegisterToPushNotifications: "ServerRequiresThisDeviceToRegisterToPushNotifications",
	KindWellKnownHasBeenDownloaded:                            "WellKnownHasBeenDownloaded",
	KindWellKnownDownloadFailure:                              "WellKnownDownloadFailure",
	KindCannotReturnAnyProgressForMessageAttachments:          "CannotReturnAnyProgressForMessageAttachments",
	KindApplicationMessagesDecrypted:                          "ApplicationMessagesDecrypted",
	KindDownloadingMessageExtendedPayloadWasPerformed:         "DownloadingMessageExtendedPayloadWasPerformed",
	KindInboxAttachmentDownloadWasResumed:                     "InboxAttachmentDownloadWasResumed",
	KindInboxAttachmentDownloadWasPaused:                      "InboxAttachmentDownloadWasPaused",
	KindOwnedAttachmentWasDownloaded:                          "OwnedAttachmentWasDownloaded",
	KindOwnedAttachmentDownloadWasResumed:                     "OwnedAttachmentDownloadWasResumed",
	KindOwnedAttachmentDownloadWasPaused:                      "OwnedAttachmentDownloadWasPaused",
	KindOwnedAttachmentDownloadCancelledByServer:              "OwnedAttachmentDownloadCancelledByServer",
	KindPushTopicReceivedViaWebsocket:                         "PushTopicReceivedViaWebsocket",
	KindKeycloakTargetedPushNotificationReceivedViaWebsocket:  "KeycloakTargetedPushNotificationReceivedViaWebsocket",
	KindNewAPIKeyElementsForCurrentAPIKey:                     "NewAPIKeyElementsForCurrentAPIKey",
	KindContactWasUpdatedWithinTheIdentityManager:             "ContactWasUpdatedWithinTheIdentityManager",
	KindPublishedPhotoOfContactWasUpdated:                     "PublishedPhotoOfContactWasUpdated",
	KindNewContactDevice:                                      "NewContactDevice",
	KindUpdatedContactDevice:                                  "UpdatedContactDevice",
	KindNewRemoteOwnedDevice:                                  "NewRemoteOwnedDevice",
	KindAnOwnedDeviceWasUpdated:                               "AnOwnedDeviceWasUpdated",
	KindAnOwnedDeviceWasDeleted:                               "AnOwnedDeviceWasDeleted",
	KindOwnedIdentityWasDeleted:                               "OwnedIdentityWasDeleted",
	KindOwnedIdentityRequiresPushRegistration:                 "OwnedIdentityRequiresPushRegistration",
	KindContactGroupHasUpdatedPendingMembersAndGroupMembers:   "ContactGroupHasUpdatedPendingMembersAndGroupMembers",
	KindTrustedPhotoOfContactGroupJoinedWasUpdated:            "TrustedPhotoOfContactGroupJoinedWasUpdated",
	KindPublishedPhotoOfContactGroupWasUpdated:                "PublishedPhotoOfContactGroupWasUpdated",
	KindLatestPhotoOfContactGroupOwnedWasUpdated:              "LatestPhotoOfContactGroupOwnedWasUpdated",
	KindContactGroupOwnedHasUpdatedLatestDetails:              "ContactGroupOwnedHasUpdatedLatestDetails",
	KindContactGroupOwnedDiscardedLatestDetails:               "ContactGroupOwnedDiscardedLatestDetails",
	KindDeclinedPendingGroupMemberWasUndeclined:               "DeclinedPendingGroupMemberWasUndeclined",
	KindGroupV2WasDeleted:                                     "GroupV2WasDeleted",
	KindGroupV2UpdateDidFail:                                  "GroupV2UpdateDidFail",
	KindKeycloakSynchronizationRequired:                       "KeycloakSynchronizationRequired",
	KindContactIntroductionInvitationSent:                     "ContactIntroductionInvitationSent",
	KindOwnedIdentityTransferProtocolFailed:                   "OwnedIdentityTransferProtocolFailed",
	KindNewConfirmedObliviousChannelWithOwnedDevice:           "NewConfirmedObliviousChannelWithOwnedDevice",
	KindDeletedConfirmedObliviousChannelWithOwnedDevice:       "DeletedConfirmedObliviousChannelWithOwnedDevice",
}

var kindSources = map[Kind]Source{
	KindOutboxMessageWasUploaded:                              SourceNetworkPost,
	KindOutboxMessagesAndAllTheirAttachmentsWereAcknowledged:  SourceNetworkPost,
	KindOutboxAttachmentWasAcknowledged:                       SourceNetworkPost,
	KindOutboxAttachmentHasNewProgress:                        SourceNetworkPost,
	KindOutboxMessageCouldNotBeSentToServer:                   SourceNetworkPost,
	KindInboxAttachmentWasDownloaded:                          SourceNetworkFetch,
	KindInboxAttachmentHasNewProgress:                         SourceNetworkFetch,
	KindInboxAttachmentDownloadCancelledByServer:              SourceNetworkFetch,
	KindNewReturnReceiptToProcess:                             SourceNetworkFetch,
	KindTurnCredentialsReceived:                               SourceNetworkFetch,
	KindTurnCredentialsReceptionFailure:                       SourceNetworkFetch,
	KindTurnCredentialsReceptionPermissionDenied:              SourceNetworkFetch,
	KindTurnCredentialServerDoesNotSupportCalls:               SourceNetworkFetch,
	KindAPIKeyStatusQueryFailed:                               SourceNetworkFetch,
	KindFreeTrialIsStillAvailableForOwnedIdentity:             SourceNetworkFetch,
	KindNoMoreFreeTrialAPIKeyAvailableForOwnedIdentity:        SourceNetworkFetch,
	KindAppStoreReceiptVerificationFailed:                     SourceNetworkFetch,
	KindWellKnownHasBeenUpdated:                               SourceNetworkFetch,
	KindContactIdentityIsNowTrusted:                           SourceIdentity,
	KindNewTrustedContactIdentityDetails:                      SourceIdentity,
	KindNewPublishedContactIdentityDetails:                    SourceIdentity,
	KindContactIsActiveChanged:                                SourceIdentity,
	KindContactWasRevokedAsCompromised:                        SourceIdentity,
	KindContactCapabilitiesWereUpdated:                        SourceIdentity,
	KindTrustedPhotoOfContactWasUpdated:                       SourceIdentity,
	KindContactWasDeleted:                                     SourceIdentity,
	KindOwnedIdentityDetailsPublicationInProgress:             SourceIdentity,
	KindOwnedIdentityCapabilitiesWereUpdated:                  SourceIdentity,
	KindOwnedIdentityKeycloakServerChanged:                    SourceIdentity,
	KindPublishedPhotoOfOwnedIdentityWasUpdated:               SourceIdentity,
	KindOwnedIdentityWasDeactivated:                           SourceIdentity,
	KindOwnedIdentityWasReactivated:                           SourceIdentity,
	KindNewContactGroupJoined:                                 SourceGroup,
	KindNewContactGroupOwned:                                  SourceGroup,
	KindContactGroupOwnedHasUpdatedPublishedDetails:           SourceGroup,
	KindContactGroupJoinedHasUpdatedTrustedDetails:            SourceGroup,
	KindContactGroupDeleted:                                   SourceGroup,
	KindPendingGroupMemberDeclinedInvitation:                  SourceGroup,
	KindNewConfirmedObliviousChannel:                          SourceChannel,
	KindDeletedConfirmedObliviousChannel:                      SourceChannel,
	KindMutualScanContactAdded:                                SourceProtocol,
	KindNewUserDialogToPresent:                                SourceProtocol,
	KindUserDialogToDelete:                                    SourceProtocol,
	KindBackupForExportWasFinished:                            SourceBackup,
	KindBackupForUploadWasFinished:                            SourceBackup,
	KindBackupFailed:                                          SourceBackup,
	KindNetworkOperationFailedSinceOwnedIdentityIsNotActive:   SourceNetworkFetch,
	KindServerRequiresThisDeviceToRegisterToPushNotifications: SourceNetworkFetch,
	KindWellKnownHasBeenDownloaded:                            SourceNetworkFetch,
	KindWellKnownDownloadFailure:                              SourceNetworkFetch,
	KindCannotReturnAnyProgressForMessageAttachments:          SourceNetworkFetch,
	KindApplicationMessagesDecrypted:                          SourceNetworkFetch,
	KindDownloadingMessageExtendedPayloadWasPerformed:         SourceNetworkFetch,
	KindInboxAttachmentDownloadWasResumed:                     SourceNetworkFetch,
	KindInboxAttachmentDownloadWasPaused:                      SourceNetworkFetch,
	KindOwnedAttachmentWasDownloaded:                          SourceNetworkFetch,
	KindOwnedAttachmentDownloadWasResumed:                     SourceNetworkFetch,
	KindOwnedAttachmentDownloadWasPaused:                      SourceNetworkFetch,
	KindOwnedAttachmentDownloadCancelledByServer:              SourceNetworkFetch,
	KindPushTopicReceivedViaWebsocket:                         SourceNetworkFetch,
	KindKeycloakTargetedPushNotificationReceivedViaWebsocket:  SourceNetworkFetch,
	KindNewAPIKeyElementsForCurrentAPIKey:                     SourceNetworkFetch,
	KindContactWasUpdatedWithinTheIdentityManager:             SourceIdentity,
	KindPublishedPhotoOfContactWasUpdated:                     SourceIdentity,
	KindNewContactDevice:                                      SourceIdentity,
	KindUpdatedContactDevice:                                  SourceIdentity,
	KindNewRemoteOwnedDevice:                                  SourceIdentity,
	KindAnOwnedDeviceWasUpdated:                               SourceIdentity,
	KindAnOwnedDeviceWasDeleted:                               SourceIdentity,
	KindOwnedIdentityWasDeleted:                               SourceIdentity,
	KindOwnedIdentityRequiresPushRegistration:                 SourceIdentity,
	KindContactGroupHasUpdatedPendingMembersAndGroupMembers:   SourceGroup,
	KindTrustedPhotoOfContactGroupJoinedWasUpdated:            SourceGroup,
	KindPublishedPhotoOfContactGroupWasUpdated:                SourceGroup,
	KindLatestPhotoOfContactGroupOwnedWasUpdated:              SourceGroup,
	KindContactGroupOwnedHasUpdatedLatestDetails:              SourceGroup,
	KindContactGroupOwnedDiscardedLatestDetails:               SourceGroup,
	KindDeclinedPendingGroupMemberWasUndeclined:               SourceGroup,
	KindGroupV2WasDeleted:                                     SourceGroup,
	KindGroupV2UpdateDidFail:                                  SourceGroup,
	KindKeycloakSynchronizationRequired:                       SourceProtocol,
	KindContactIntroductionInvitationSent:                     SourceProtocol,
	KindOwnedIdentityTransferProtocolFailed:                   SourceProtocol,
	KindNewConfirmedObliviousChannelWithOwnedDevice:           SourceChannel,
	KindDeletedConfirmedObliviousChannelWithOwnedDevice:       SourceChannel,
}

// Source is the internal component that raises an event.
type Source string

const (
	SourceIdentity     Source = "identity"
	SourceChannel      Source = "channel"
	SourceProtocol     Source = "protocol"
	SourceGroup        Source = "group"
	SourceNetworkFetch Source = "network-fetch"
	SourceNetworkPost  Source = "network-post"
	SourceBackup       Source = "backup"
)

// Event is an internal engine event. The set of implementations is closed:
// only types in this package can satisfy it.
type Event interface {
	Kind() Kind
	event()
}

// String returns the variant name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Source returns the component that raises events of this kind.
func (k Kind) Source() Source {
	return kindSources[k]
}

// AllKinds returns every known kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindUnknown + 1; ; k++ {
		if _, ok := kindNames[k]; !ok {
			return kinds
		}
		kinds = append(kinds, k)
	}
}

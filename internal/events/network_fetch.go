package events

import (
	"time"

	"github.com/roach88/msgcore/internal/ir"
)

type InboxAttachmentWasDownloaded struct {
	AttachmentID ir.AttachmentID
}

func (InboxAttachmentWasDownloaded) Kind() Kind { return KindInboxAttachmentWasDownloaded }
func (InboxAttachmentWasDownloaded) event() {}

type InboxAttachmentHasNewProgress struct {
	AttachmentID   ir.AttachmentID
	CompletedBytes int64
	TotalBytes     int64
}

func (InboxAttachmentHasNewProgress) Kind() Kind { return KindInboxAttachmentHasNewProgress }
func (InboxAttachmentHasNewProgress) event() {}

type InboxAttachmentDownloadCancelledByServer struct {
	AttachmentID ir.AttachmentID
}

func (InboxAttachmentDownloadCancelledByServer) Kind() Kind { return KindInboxAttachmentDownloadCancelledByServer }
func (InboxAttachmentDownloadCancelledByServer) event() {}

// NewReturnReceiptToProcess is raised for every encrypted return receipt fetched from the server.
type NewReturnReceiptToProcess struct {
	Receipt ir.ReturnReceipt
}

func (NewReturnReceiptToProcess) Kind() Kind { return KindNewReturnReceiptToProcess }
func (NewReturnReceiptToProcess) event() {}

type TurnCredentialsReceived struct {
	OwnedIdentity ir.CryptoID
	CallUUID      string
	Username      string
	Password      string
	Servers       []string
}

func (TurnCredentialsReceived) Kind() Kind { return KindTurnCredentialsReceived }
func (TurnCredentialsReceived) event() {}

type TurnCredentialsReceptionFailure struct {
	OwnedIdentity ir.CryptoID
	CallUUID      string
}

func (TurnCredentialsReceptionFailure) Kind() Kind { return KindTurnCredentialsReceptionFailure }
func (TurnCredentialsReceptionFailure) event() {}

type TurnCredentialsReceptionPermissionDenied struct {
	OwnedIdentity ir.CryptoID
	CallUUID      string
}

func (TurnCredentialsReceptionPermissionDenied) Kind() Kind { return KindTurnCredentialsReceptionPermissionDenied }
func (TurnCredentialsReceptionPermissionDenied) event() {}

type TurnCredentialServerDoesNotSupportCalls struct {
	OwnedIdentity ir.CryptoID
	CallUUID      string
}

func (TurnCredentialServerDoesNotSupportCalls) Kind() Kind { return KindTurnCredentialServerDoesNotSupportCalls }
func (TurnCredentialServerDoesNotSupportCalls) event() {}

type APIKeyStatusQueryFailed struct {
	OwnedIdentity ir.CryptoID
	APIKey        string
}

func (APIKeyStatusQueryFailed) Kind() Kind { return KindAPIKeyStatusQueryFailed }
func (APIKeyStatusQueryFailed) event() {}

type FreeTrialIsStillAvailableForOwnedIdentity struct {
	OwnedIdentity ir.CryptoID
}

func (FreeTrialIsStillAvailableForOwnedIdentity) Kind() Kind { return KindFreeTrialIsStillAvailableForOwnedIdentity }
func (FreeTrialIsStillAvailableForOwnedIdentity) event() {}

type NoMoreFreeTrialAPIKeyAvailableForOwnedIdentity struct {
	OwnedIdentity ir.CryptoID
}

func (NoMoreFreeTrialAPIKeyAvailableForOwnedIdentity) Kind() Kind { return KindNoMoreFreeTrialAPIKeyAvailableForOwnedIdentity }
func (NoMoreFreeTrialAPIKeyAvailableForOwnedIdentity) event() {}

type AppStoreReceiptVerificationFailed struct {
	OwnedIdentity ir.CryptoID
	TransactionID string
}

func (AppStoreReceiptVerificationFailed) Kind() Kind { return KindAppStoreReceiptVerificationFailed }
func (AppStoreReceiptVerificationFailed) event() {}

type WellKnownHasBeenUpdated struct {
	ServerURL string
}

func (WellKnownHasBeenUpdated) Kind() Kind { return KindWellKnownHasBeenUpdated }
func (WellKnownHasBeenUpdated) event() {}

// NetworkOperationFailedSinceOwnedIdentityIsNotActive is raised by the fetch and post managers alike.
type NetworkOperationFailedSinceOwnedIdentityIsNotActive struct {
	OwnedIdentity ir.CryptoID
}

func (NetworkOperationFailedSinceOwnedIdentityIsNotActive) Kind() Kind { return KindNetworkOperationFailedSinceOwnedIdentityIsNotActive }
func (NetworkOperationFailedSinceOwnedIdentityIsNotActive) event() {}

type ServerRequiresThisDeviceToRegisterToPushNotifications struct{}

func (ServerRequiresThisDeviceToRegisterToPushNotifications) Kind() Kind { return KindServerRequiresThisDeviceToRegisterToPushNotifications }
func (ServerRequiresThisDeviceToRegisterToPushNotifications) event() {}

// WellKnownHasBeenDownloaded is raised on every successful download, changed or not.
type WellKnownHasBeenDownloaded struct {
	ServerURL string
}

func (WellKnownHasBeenDownloaded) Kind() Kind { return KindWellKnownHasBeenDownloaded }
func (WellKnownHasBeenDownloaded) event() {}

type WellKnownDownloadFailure struct {
	ServerURL string
}

func (WellKnownDownloadFailure) Kind() Kind { return KindWellKnownDownloadFailure }
func (WellKnownDownloadFailure) event() {}

type CannotReturnAnyProgressForMessageAttachments struct {
	MessageID ir.MessageID
}

func (CannotReturnAnyProgressForMessageAttachments) Kind() Kind { return KindCannotReturnAnyProgressForMessageAttachments }
func (CannotReturnAnyProgressForMessageAttachments) event() {}

// ApplicationMessagesDecrypted carries one batch of freshly decrypted messages.
type ApplicationMessagesDecrypted struct {
	MessageIDs []ir.MessageID
}

func (ApplicationMessagesDecrypted) Kind() Kind { return KindApplicationMessagesDecrypted }
func (ApplicationMessagesDecrypted) event() {}

type DownloadingMessageExtendedPayloadWasPerformed struct {
	MessageID ir.MessageID
}

func (DownloadingMessageExtendedPayloadWasPerformed) Kind() Kind { return KindDownloadingMessageExtendedPayloadWasPerformed }
func (DownloadingMessageExtendedPayloadWasPerformed) event() {}

type InboxAttachmentDownloadWasResumed struct {
	AttachmentID ir.AttachmentID
}

func (InboxAttachmentDownloadWasResumed) Kind() Kind { return KindInboxAttachmentDownloadWasResumed }
func (InboxAttachmentDownloadWasResumed) event() {}

type InboxAttachmentDownloadWasPaused struct {
	AttachmentID ir.AttachmentID
}

func (InboxAttachmentDownloadWasPaused) Kind() Kind { return KindInboxAttachmentDownloadWasPaused }
func (InboxAttachmentDownloadWasPaused) event() {}

// OwnedAttachmentWasDownloaded is the counterpart of InboxAttachmentWasDownloaded for
// attachments sent from another device of the same owned identity.
type OwnedAttachmentWasDownloaded struct {
	AttachmentID ir.AttachmentID
}

func (OwnedAttachmentWasDownloaded) Kind() Kind { return KindOwnedAttachmentWasDownloaded }
func (OwnedAttachmentWasDownloaded) event() {}

type OwnedAttachmentDownloadWasResumed struct {
	AttachmentID ir.AttachmentID
}

func (OwnedAttachmentDownloadWasResumed) Kind() Kind { return KindOwnedAttachmentDownloadWasResumed }
func (OwnedAttachmentDownloadWasResumed) event() {}

type OwnedAttachmentDownloadWasPaused struct {
	AttachmentID ir.AttachmentID
}

func (OwnedAttachmentDownloadWasPaused) Kind() Kind { return KindOwnedAttachmentDownloadWasPaused }
func (OwnedAttachmentDownloadWasPaused) event() {}

type OwnedAttachmentDownloadCancelledByServer struct {
	AttachmentID ir.AttachmentID
}

func (OwnedAttachmentDownloadCancelledByServer) Kind() Kind { return KindOwnedAttachmentDownloadCancelledByServer }
func (OwnedAttachmentDownloadCancelledByServer) event() {}

type PushTopicReceivedViaWebsocket struct {
	PushTopic string
}

func (PushTopicReceivedViaWebsocket) Kind() Kind { return KindPushTopicReceivedViaWebsocket }
func (PushTopicReceivedViaWebsocket) event() {}

type KeycloakTargetedPushNotificationReceivedViaWebsocket struct {
	OwnedIdentity ir.CryptoID
}

func (KeycloakTargetedPushNotificationReceivedViaWebsocket) Kind() Kind { return KindKeycloakTargetedPushNotificationReceivedViaWebsocket }
func (KeycloakTargetedPushNotificationReceivedViaWebsocket) event() {}

// NewAPIKeyElementsForCurrentAPIKey has a zero ExpiresAt for keys that never expire.
type NewAPIKeyElementsForCurrentAPIKey struct {
	OwnedIdentity ir.CryptoID
	Status        string
	Permissions   []string
	ExpiresAt     time.Time
}

func (NewAPIKeyElementsForCurrentAPIKey) Kind() Kind { return KindNewAPIKeyElementsForCurrentAPIKey }
func (NewAPIKeyElementsForCurrentAPIKey) event() {}

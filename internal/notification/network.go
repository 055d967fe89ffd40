package notification

import (
	"time"

	"github.com/roach88/msgcore/internal/ir"
)

type AttachmentDownloaded struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (AttachmentDownloaded) Name() Name { return NameAttachmentDownloaded }
func (AttachmentDownloaded) notification() {}

type InboxAttachmentProgress struct {
	AttachmentID   ir.AttachmentID `json:"attachment_id"`
	CompletedBytes int64           `json:"completed_bytes"`
	TotalBytes     int64           `json:"total_bytes"`
}

func (InboxAttachmentProgress) Name() Name { return NameInboxAttachmentProgress }
func (InboxAttachmentProgress) notification() {}

type AttachmentDownloadCancelledByServer struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (AttachmentDownloadCancelledByServer) Name() Name { return NameAttachmentDownloadCancelledByServer }
func (AttachmentDownloadCancelledByServer) notification() {}

type NewReturnReceiptToProcess struct {
	Receipt ir.ReturnReceipt `json:"receipt"`
}

func (NewReturnReceiptToProcess) Name() Name { return NameNewReturnReceiptToProcess }
func (NewReturnReceiptToProcess) notification() {}

type CallTurnCredentialsReceived struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	CallUUID      string      `json:"call_uuid"`
	Username      string      `json:"username"`
	Password      string      `json:"password"`
	Servers       []string    `json:"servers"`
}

func (CallTurnCredentialsReceived) Name() Name { return NameCallTurnCredentialsReceived }
func (CallTurnCredentialsReceived) notification() {}

type CallTurnCredentialsReceptionFailure struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	CallUUID      string      `json:"call_uuid"`
}

func (CallTurnCredentialsReceptionFailure) Name() Name { return NameCallTurnCredentialsReceptionFailure }
func (CallTurnCredentialsReceptionFailure) notification() {}

type CallTurnCredentialsReceptionPermissionDenied struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	CallUUID      string      `json:"call_uuid"`
}

func (CallTurnCredentialsReceptionPermissionDenied) Name() Name { return NameCallTurnCredentialsReceptionPermissionDenied }
func (CallTurnCredentialsReceptionPermissionDenied) notification() {}

type CallTurnServerDoesNotSupportCalls struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	CallUUID      string      `json:"call_uuid"`
}

func (CallTurnServerDoesNotSupportCalls) Name() Name { return NameCallTurnServerDoesNotSupportCalls }
func (CallTurnServerDoesNotSupportCalls) notification() {}

type APIKeyStatusQueryFailed struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	APIKey        string      `json:"api_key"`
}

func (APIKeyStatusQueryFailed) Name() Name { return NameAPIKeyStatusQueryFailed }
func (APIKeyStatusQueryFailed) notification() {}

type FreeTrialIsStillAvailable struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
}

func (FreeTrialIsStillAvailable) Name() Name { return NameFreeTrialIsStillAvailable }
func (FreeTrialIsStillAvailable) notification() {}

type NoMoreFreeTrialAvailable struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
}

func (NoMoreFreeTrialAvailable) Name() Name { return NameNoMoreFreeTrialAvailable }
func (NoMoreFreeTrialAvailable) notification() {}

type AppStoreReceiptVerificationFailed struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	TransactionID string      `json:"transaction_id"`
}

func (AppStoreReceiptVerificationFailed) Name() Name { return NameAppStoreReceiptVerificationFailed }
func (AppStoreReceiptVerificationFailed) notification() {}

type WellKnownUpdated struct {
	ServerURL string `json:"server_url"`
}

func (WellKnownUpdated) Name() Name { return NameWellKnownUpdated }
func (WellKnownUpdated) notification() {}

type NetworkOperationFailedSinceOwnedIdentityIsNotActive struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
}

func (NetworkOperationFailedSinceOwnedIdentityIsNotActive) Name() Name { return NameNetworkOperationFailedSinceOwnedIdentityIsNotActive }
func (NetworkOperationFailedSinceOwnedIdentityIsNotActive) notification() {}

type ServerRequiresPushRegistration struct{}

func (ServerRequiresPushRegistration) Name() Name { return NameServerRequiresPushRegistration }
func (ServerRequiresPushRegistration) notification() {}

type WellKnownDownloaded struct {
	ServerURL string `json:"server_url"`
}

func (WellKnownDownloaded) Name() Name { return NameWellKnownDownloaded }
func (WellKnownDownloaded) notification() {}

type WellKnownDownloadFailed struct {
	ServerURL string `json:"server_url"`
}

func (WellKnownDownloadFailed) Name() Name { return NameWellKnownDownloadFailed }
func (WellKnownDownloadFailed) notification() {}

type AttachmentDownloadResumed struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (AttachmentDownloadResumed) Name() Name { return NameAttachmentDownloadResumed }
func (AttachmentDownloadResumed) notification() {}

type AttachmentDownloadPaused struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (AttachmentDownloadPaused) Name() Name { return NameAttachmentDownloadPaused }
func (AttachmentDownloadPaused) notification() {}

type OwnedAttachmentDownloaded struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (OwnedAttachmentDownloaded) Name() Name { return NameOwnedAttachmentDownloaded }
func (OwnedAttachmentDownloaded) notification() {}

type OwnedAttachmentDownloadResumed struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (OwnedAttachmentDownloadResumed) Name() Name { return NameOwnedAttachmentDownloadResumed }
func (OwnedAttachmentDownloadResumed) notification() {}

type OwnedAttachmentDownloadPaused struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (OwnedAttachmentDownloadPaused) Name() Name { return NameOwnedAttachmentDownloadPaused }
func (OwnedAttachmentDownloadPaused) notification() {}

type OwnedAttachmentDownloadCancelledByServer struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (OwnedAttachmentDownloadCancelledByServer) Name() Name { return NameOwnedAttachmentDownloadCancelledByServer }
func (OwnedAttachmentDownloadCancelledByServer) notification() {}

type PushTopicReceived struct {
	PushTopic string `json:"push_topic"`
}

func (PushTopicReceived) Name() Name { return NamePushTopicReceived }
func (PushTopicReceived) notification() {}

type KeycloakTargetedPushNotificationReceived struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
}

func (KeycloakTargetedPushNotificationReceived) Name() Name { return NameKeycloakTargetedPushNotificationReceived }
func (KeycloakTargetedPushNotificationReceived) notification() {}

type NewAPIKeyElements struct {
	OwnedIdentity ir.CryptoID `json:"owned_identity"`
	Status        string      `json:"status"`
	Permissions   []string    `json:"permissions"`
	ExpiresAt     time.Time   `json:"expires_at"`
}

func (NewAPIKeyElements) Name() Name { return NameNewAPIKeyElements }
func (NewAPIKeyElements) notification() {}

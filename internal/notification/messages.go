package notification

import (
	"time"

	"github.com/roach88/msgcore/internal/ir"
)

type MessageWasUploaded struct {
	MessageID                   ir.MessageID `json:"message_id"`
	TimestampFromServer         time.Time    `json:"timestamp_from_server"`
	IsAppMessageWithUserContent bool         `json:"is_app_message_with_user_content"`
	IsVoipMessage               bool         `json:"is_voip_message"`
}

func (MessageWasUploaded) Name() Name { return NameMessageWasUploaded }
func (MessageWasUploaded) notification() {}

type MessagesWereAcknowledged struct {
	Acks []ir.MessageAck `json:"acks"`
}

func (MessagesWereAcknowledged) Name() Name { return NameMessagesWereAcknowledged }
func (MessagesWereAcknowledged) notification() {}

type AttachmentWasAcknowledgedByServer struct {
	AttachmentID ir.AttachmentID `json:"attachment_id"`
}

func (AttachmentWasAcknowledgedByServer) Name() Name { return NameAttachmentWasAcknowledgedByServer }
func (AttachmentWasAcknowledgedByServer) notification() {}

type OutboxAttachmentProgress struct {
	AttachmentID   ir.AttachmentID `json:"attachment_id"`
	CompletedBytes int64           `json:"completed_bytes"`
	TotalBytes     int64           `json:"total_bytes"`
}

func (OutboxAttachmentProgress) Name() Name { return NameOutboxAttachmentProgress }
func (OutboxAttachmentProgress) notification() {}

type MessageCouldNotBeSent struct {
	MessageID ir.MessageID `json:"message_id"`
}

func (MessageCouldNotBeSent) Name() Name { return NameMessageCouldNotBeSent }
func (MessageCouldNotBeSent) notification() {}

type CannotReturnAttachmentProgress struct {
	MessageID ir.MessageID `json:"message_id"`
}

func (CannotReturnAttachmentProgress) Name() Name { return NameCannotReturnAttachmentProgress }
func (CannotReturnAttachmentProgress) notification() {}

type NewMessagesReceived struct {
	MessageIDs []ir.MessageID `json:"message_ids"`
}

func (NewMessagesReceived) Name() Name { return NameNewMessagesReceived }
func (NewMessagesReceived) notification() {}

type MessageExtendedPayloadAvailable struct {
	MessageID ir.MessageID `json:"message_id"`
}

func (MessageExtendedPayloadAvailable) Name() Name { return NameMessageExtendedPayloadAvailable }
func (MessageExtendedPayloadAvailable) notification() {}

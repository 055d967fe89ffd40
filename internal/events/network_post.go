package events

import (
	"time"

	"github.com/roach88/msgcore/internal/ir"
)

// OutboxMessageWasUploaded is raised once the server has stored an outbound message.
type OutboxMessageWasUploaded struct {
	MessageID                   ir.MessageID
	TimestampFromServer         time.Time
	IsAppMessageWithUserContent bool
	IsVoipMessage               bool
}

func (OutboxMessageWasUploaded) Kind() Kind { return KindOutboxMessageWasUploaded }
func (OutboxMessageWasUploaded) event() {}

// OutboxMessagesAndAllTheirAttachmentsWereAcknowledged carries every outbound message whose attachments were all acknowledged, in one batch.
type OutboxMessagesAndAllTheirAttachmentsWereAcknowledged struct {
	Acks []ir.MessageAck
}

func (OutboxMessagesAndAllTheirAttachmentsWereAcknowledged) Kind() Kind { return KindOutboxMessagesAndAllTheirAttachmentsWereAcknowledged }
func (OutboxMessagesAndAllTheirAttachmentsWereAcknowledged) event() {}

type OutboxAttachmentWasAcknowledged struct {
	AttachmentID ir.AttachmentID
}

func (OutboxAttachmentWasAcknowledged) Kind() Kind { return KindOutboxAttachmentWasAcknowledged }
func (OutboxAttachmentWasAcknowledged) event() {}

type OutboxAttachmentHasNewProgress struct {
	AttachmentID   ir.AttachmentID
	CompletedBytes int64
	TotalBytes     int64
}

func (OutboxAttachmentHasNewProgress) Kind() Kind { return KindOutboxAttachmentHasNewProgress }
func (OutboxAttachmentHasNewProgress) event() {}

type OutboxMessageCouldNotBeSentToServer struct {
	MessageID ir.MessageID
}

func (OutboxMessageCouldNotBeSentToServer) Kind() Kind { return KindOutboxMessageCouldNotBeSentToServer }
func (OutboxMessageCouldNotBeSentToServer) event() {}

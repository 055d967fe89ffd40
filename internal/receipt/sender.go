package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/logging"
)

// SendRequest describes one receipt to send.
type SendRequest struct {
	Elements  Elements
	Status    Status
	ToContact ir.CryptoID
	FromOwned ir.CryptoID
	// DeviceUIDs are the recipient devices the server fans the receipt out to.
	DeviceUIDs []ir.UID
	// AttachmentNumber is set for attachment receipts.
	AttachmentNumber *int
}

// Decrypted is the content of a received receipt.
type Decrypted struct {
	ContactID        ir.CryptoID
	Status           Status
	AttachmentNumber *int
}

// uploadRequest is the wire body of one receipt upload.
type uploadRequest struct {
	OwnedIdentity       []byte   `msgpack:"owned_identity"`
	Nonce               []byte   `msgpack:"nonce"`
	EncryptedPayload    []byte   `msgpack:"encrypted_payload"`
	RecipientIdentity   []byte   `msgpack:"recipient_identity"`
	RecipientDeviceUIDs [][]byte `msgpack:"recipient_device_uids"`
}

// Sender encrypts receipts and hands them to its uploader. Sends are
// fire-and-forget: a failed upload is logged and never retried.
type Sender struct {
	uploader *Uploader
	log      *zap.Logger
}

// NewSender creates a sender over uploader.
func NewSender(uploader *Uploader, log *zap.Logger) (*Sender, error) {
	if uploader == nil {
		return nil, errors.New("receipt: uploader is required")
	}
	return &Sender{uploader: uploader, log: logging.OrNop(log)}, nil
}

// GenerateElements returns fresh elements for one outgoing message.
func (s *Sender) GenerateElements() (Elements, error) {
	return GenerateElements()
}

// Send encrypts the receipt and submits its upload. It returns once the
// upload task is registered; the returned id names that task.
func (s *Sender) Send(ctx context.Context, req SendRequest) (string, error) {
	if len(req.ToContact) == 0 {
		return "", errors.New("receipt: recipient is required")
	}
	sealed, err := Seal(req.Elements, Payload{
		Identity:         req.FromOwned,
		Status:           req.Status,
		AttachmentNumber: req.AttachmentNumber,
	})
	if err != nil {
		return "", err
	}

	devices := make([][]byte, len(req.DeviceUIDs))
	for i, uid := range req.DeviceUIDs {
		devices[i] = uid[:]
	}
	body, err := msgpack.Marshal(uploadRequest{
		OwnedIdentity:       req.FromOwned,
		Nonce:               req.Elements.Nonce[:],
		EncryptedPayload:    sealed,
		RecipientIdentity:   req.ToContact,
		RecipientDeviceUIDs: devices,
	})
	if err != nil {
		return "", fmt.Errorf("encode receipt upload: %w", err)
	}

	taskID, err := s.uploader.Submit(ctx, body)
	if err != nil {
		return "", err
	}
	s.log.Debug("receipt submitted",
		zap.String("task_id", taskID),
		zap.Stringer("status", req.Status),
		zap.Int("devices", len(devices)),
	)
	return taskID, nil
}

// Decrypt opens a received receipt with the elements of the message it
// acknowledges.
func (s *Sender) Decrypt(r ir.ReturnReceipt, e Elements) (Decrypted, error) {
	return Decrypt(r, e)
}

// Decrypt opens a received receipt. The receipt's nonce must be the one in
// e; any mismatch fails authentication.
func Decrypt(r ir.ReturnReceipt, e Elements) (Decrypted, error) {
	p, err := Open(e, r.EncryptedPayload)
	if err != nil {
		return Decrypted{}, err
	}
	return Decrypted{ContactID: p.Identity, Status: p.Status, AttachmentNumber: p.AttachmentNumber}, nil
}

// HandleBackgroundEvents forwards an OS background wake to the uploader.
func (s *Sender) HandleBackgroundEvents(ctx context.Context, channelID string, done func()) error {
	return s.uploader.HandleBackgroundEvents(ctx, channelID, done)
}

package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/receipt"
)

// ElementsOutput is a freshly generated nonce and key, hex encoded.
type ElementsOutput struct {
	Nonce string `json:"nonce"`
	Key   string `json:"key"`
}

func (e ElementsOutput) String() string {
	return fmt.Sprintf("nonce: %s\nkey:   %s", e.Nonce, e.Key)
}

// DecryptOutput is an opened receipt.
type DecryptOutput struct {
	Contact          ir.CryptoID `json:"contact"`
	Status           string      `json:"status"`
	AttachmentNumber *int        `json:"attachment_number,omitempty"`
}

func (d DecryptOutput) String() string {
	s := fmt.Sprintf("%s from %s", d.Status, d.Contact)
	if d.AttachmentNumber != nil {
		s += fmt.Sprintf(" (attachment %d)", *d.AttachmentNumber)
	}
	return s
}

// ReceiptDecryptOptions holds flags for receipt decrypt.
type ReceiptDecryptOptions struct {
	*RootOptions
	Nonce   string
	Key     string
	Payload string
}

// NewReceiptCommand creates the receipt command group.
func NewReceiptCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Generate receipt elements or open a received receipt",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "keygen",
		Short: "Generate a nonce and key for one outgoing message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			e, err := receipt.GenerateElements()
			if err != nil {
				return f.Fail(WrapExitError(ExitFailure, ErrCodeGeneric, "failed to generate elements", err))
			}
			return f.Success(ElementsOutput{
				Nonce: hex.EncodeToString(e.Nonce[:]),
				Key:   hex.EncodeToString(e.Key),
			})
		},
	})
	cmd.AddCommand(newReceiptDecryptCommand(rootOpts))
	return cmd
}

func newReceiptDecryptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReceiptDecryptOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Open a received receipt with its message's elements",
		Long: `Open a received receipt. All values are hex encoded.

Exit codes:
  0 - Receipt opened
  1 - Receipt failed authentication or could not be decoded
  2 - Command error (bad hex, wrong nonce length)

Example:
  msgcore receipt decrypt --nonce 0f1e... --key 01a3... --payload 9c77...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReceiptDecrypt(opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Nonce, "nonce", "", "receipt nonce (required)")
	cmd.Flags().StringVar(&opts.Key, "key", "", "receipt key (required)")
	cmd.Flags().StringVar(&opts.Payload, "payload", "", "encrypted payload (required)")
	_ = cmd.MarkFlagRequired("nonce")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("payload")
	return cmd
}

func runReceiptDecrypt(opts *ReceiptDecryptOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	nonce, err := hex.DecodeString(opts.Nonce)
	if err != nil || len(nonce) != receipt.NonceSize {
		return f.Fail(NewExitError(ExitCommandError, ErrCodeBadInput,
			fmt.Sprintf("nonce must be %d hex-encoded bytes", receipt.NonceSize)))
	}
	key, err := hex.DecodeString(opts.Key)
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeBadInput, "invalid key", err))
	}
	payload, err := hex.DecodeString(opts.Payload)
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeBadInput, "invalid payload", err))
	}

	var e receipt.Elements
	copy(e.Nonce[:], nonce)
	e.Key = key

	d, err := receipt.Decrypt(ir.ReturnReceipt{Nonce: nonce, EncryptedPayload: payload}, e)
	if err != nil {
		return f.Fail(WrapExitError(ExitFailure, ErrCodeDecryption, "receipt rejected", err))
	}
	return f.Success(DecryptOutput{
		Contact:          d.ContactID,
		Status:           d.Status.String(),
		AttachmentNumber: d.AttachmentNumber,
	})
}

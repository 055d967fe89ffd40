package events

import (
	"github.com/roach88/msgcore/internal/ir"
)

type BackupForExportWasFinished struct {
	BackupKeyUID         ir.UID
	Version              int
	EncryptedContentSize int64
}

func (BackupForExportWasFinished) Kind() Kind { return KindBackupForExportWasFinished }
func (BackupForExportWasFinished) event() {}

type BackupForUploadWasFinished struct {
	BackupKeyUID         ir.UID
	Version              int
	EncryptedContentSize int64
}

func (BackupForUploadWasFinished) Kind() Kind { return KindBackupForUploadWasFinished }
func (BackupForUploadWasFinished) event() {}

type BackupFailed struct {
	BackupKeyUID ir.UID
	Version      int
}

func (BackupFailed) Kind() Kind { return KindBackupFailed }
func (BackupFailed) event() {}

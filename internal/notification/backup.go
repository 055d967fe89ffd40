package notification

import (
	"github.com/roach88/msgcore/internal/ir"
)

type BackupForExportFinished struct {
	BackupKeyUID         ir.UID `json:"backup_key_uid"`
	Version              int    `json:"version"`
	EncryptedContentSize int64  `json:"encrypted_content_size"`
}

func (BackupForExportFinished) Name() Name { return NameBackupForExportFinished }
func (BackupForExportFinished) notification() {}

type BackupForUploadFinished struct {
	BackupKeyUID         ir.UID `json:"backup_key_uid"`
	Version              int    `json:"version"`
	EncryptedContentSize int64  `json:"encrypted_content_size"`
}

func (BackupForUploadFinished) Name() Name { return NameBackupForUploadFinished }
func (BackupForUploadFinished) notification() {}

type BackupFailed struct {
	BackupKeyUID ir.UID `json:"backup_key_uid"`
	Version      int    `json:"version"`
}

func (BackupFailed) Name() Name { return NameBackupFailed }
func (BackupFailed) notification() {}

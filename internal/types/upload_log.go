package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UploadLog is one append-only audit row per bulk ingestion operation. Rows
// are never mutated or deleted.
type UploadLog struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UploadedBy        uuid.UUID      `gorm:"type:uuid;column:uploaded_by;not null;index" json:"uploaded_by"`
	FileName          string         `gorm:"column:file_name;not null" json:"file_name"`
	FileType          string         `gorm:"column:file_type" json:"file_type"`
	RecordsProcessed  int            `gorm:"column:records_processed;not null;default:0" json:"records_processed"`
	RecordsSuccessful int            `gorm:"column:records_successful;not null;default:0" json:"records_successful"`
	RecordsFailed     int            `gorm:"column:records_failed;not null;default:0" json:"records_failed"`
	ErrorDetails      datatypes.JSON `gorm:"column:error_details;type:jsonb" json:"error_details,omitempty"`
	UploadType        string         `gorm:"column:upload_type;not null" json:"upload_type"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (UploadLog) TableName() string { return "upload_logs" }

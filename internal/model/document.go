package model

import (
	"time"

	"gorm.io/gorm"
)

// Document status values
const (
	DocumentUploaded = "UPLOADED"
	DocumentVerified = "VERIFIED"
	DocumentRejected = "REJECTED"
)

// DocumentTypeOther marks a non-required ad-hoc upload
const DocumentTypeOther = "OTHER"

// Document represents a single uploaded KYC document. A company may hold
// multiple documents of the same type; rejected documents are retained as
// an audit trail and superseded by re-uploads rather than mutated.
type Document struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	CompanyID       uint           `json:"company_id" gorm:"index;not null"`
	DocumentType    string         `json:"document_type" gorm:"type:varchar(50);index;not null"`
	Status          string         `json:"status" gorm:"type:varchar(20);not null;default:'UPLOADED'"`
	FileName        string         `json:"file_name" gorm:"type:varchar(255);not null"`
	StorageKey      string         `json:"-" gorm:"type:varchar(512)"`
	FileSize        int64          `json:"file_size"`
	MimeType        string         `json:"mime_type,omitempty" gorm:"type:varchar(128)"`
	RejectionReason string         `json:"rejection_reason,omitempty" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

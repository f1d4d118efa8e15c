package model

import (
	"time"
)

// RequiredDocumentType is one entry of the administrator-configured
// requirement registry. The engine only ever reads this table; changes
// take effect for all companies on the next compliance evaluation.
type RequiredDocumentType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

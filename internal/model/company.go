package model

import (
	"time"

	"gorm.io/gorm"
)

// Onboarding status values for a company
const (
	OnboardingPending   = "PENDING"
	OnboardingCompleted = "COMPLETED"
	OnboardingRejected  = "REJECTED"
)

// Company represents a client company going through KYC onboarding.
// RenewalDate is compared at day granularity only; OnboardingStatus is
// mutated by the activation flow or by an administrator, never directly
// by company users.
type Company struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"type:varchar(100);not null"`
	ContactEmail     string         `json:"contact_email" gorm:"type:varchar(100);index;not null"`
	OwnerID          uint           `json:"owner_id" gorm:"index;not null"` // Reference to the User ID who registered this company
	OnboardingStatus string         `json:"onboarding_status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	RenewalDate      *time.Time     `json:"renewal_date,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:CompanyID"`
}

package model

import (
	"time"
)

// FoundItem represents an item recovered on property and held in storage
type FoundItem struct {
	ID                uint            `json:"id" gorm:"primarykey"`
	TenantID          uint            `json:"tenant_id" gorm:"index;not null"`
	ItemName          string          `json:"item_name" gorm:"type:varchar(100);not null"`
	Category          string          `json:"category" gorm:"type:varchar(50)"`
	Description       string          `json:"description" gorm:"type:text"`
	Color             string          `json:"color" gorm:"type:varchar(20)"`
	Brand             string          `json:"brand" gorm:"type:varchar(50)"`
	LocationFound     string          `json:"location_found" gorm:"type:varchar(100);not null"`
	FinderName        string          `json:"finder_name" gorm:"type:varchar(100)"`
	StorageLocation   string          `json:"storage_location" gorm:"type:varchar(50)"`
	StorageNotes      string          `json:"storage_notes" gorm:"type:text"`
	Status            FoundItemStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'InStorage'"`
	FoundAt           time.Time       `json:"found_at" gorm:"index;not null"`
	ClaimedAt         *time.Time      `json:"claimed_at,omitempty"`
	DisposalDate      time.Time       `json:"disposal_date" gorm:"index"`
	DisposalAfterDays int             `json:"disposal_after_days" gorm:"default:90"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

package model

import (
	"time"
)

// LostItem represents a guest report of a missing item
type LostItem struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	TenantID       uint           `json:"tenant_id" gorm:"index;not null"`
	ItemName       string         `json:"item_name" gorm:"type:varchar(100);not null"`
	Category       string         `json:"category" gorm:"type:varchar(50)"`
	Description    string         `json:"description" gorm:"type:text"`
	Color          string         `json:"color" gorm:"type:varchar(20)"`
	Brand          string         `json:"brand" gorm:"type:varchar(50)"`
	LocationLost   string         `json:"location_lost" gorm:"type:varchar(100)"`
	RoomNumber     string         `json:"room_number" gorm:"type:varchar(20)"`
	ReporterPhone  string         `json:"reporter_phone" gorm:"type:varchar(20);index"`
	ReporterName   string         `json:"reporter_name" gorm:"type:varchar(100)"`
	ConversationID *uint          `json:"conversation_id,omitempty"`
	RewardAmount   *float64       `json:"reward_amount,omitempty"`
	Instructions   string         `json:"special_instructions" gorm:"type:text"`
	Status         LostItemStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'Open'"`
	Notes          string         `json:"notes" gorm:"type:text"`
	ReportedAt     time.Time      `json:"reported_at" gorm:"index;not null"`
	ClaimedAt      *time.Time     `json:"claimed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

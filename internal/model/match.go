package model

import (
	"time"
)

// Match is a scored pairing proposal between one lost item and one found item.
// A (tenant, lost item, found item) triple has at most one row, enforced by the
// composite unique index; re-scoring the same pair updates the existing row.
type Match struct {
	ID               uint        `json:"id" gorm:"primarykey"`
	TenantID         uint        `json:"tenant_id" gorm:"uniqueIndex:idx_match_pair;index;not null"`
	LostItemID       uint        `json:"lost_item_id" gorm:"uniqueIndex:idx_match_pair;index;not null"`
	FoundItemID      uint        `json:"found_item_id" gorm:"uniqueIndex:idx_match_pair;index;not null"`
	MatchScore       int         `json:"match_score" gorm:"not null"`
	Status           MatchStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'Pending'"`
	MatchingReason   string      `json:"matching_reason" gorm:"type:text"`
	VerifiedBy       *uint       `json:"verified_by,omitempty"`
	VerifiedAt       *time.Time  `json:"verified_at,omitempty"`
	GuestConfirmed   bool        `json:"guest_confirmed" gorm:"default:false"`
	GuestConfirmedAt *time.Time  `json:"guest_confirmed_at,omitempty"`
	ClaimedAt        *time.Time  `json:"claimed_at,omitempty"`
	Notes            string      `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TableName overrides the default table name
func (Match) TableName() string {
	return "lost_found_matches"
}

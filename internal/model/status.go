package model

import "strings"

// LostItemStatus is the lifecycle state of a guest-reported lost item
type LostItemStatus string

const (
	LostItemOpen    LostItemStatus = "Open"
	LostItemMatched LostItemStatus = "Matched"
	LostItemClaimed LostItemStatus = "Claimed"
	LostItemClosed  LostItemStatus = "Closed"
)

// FoundItemStatus is the lifecycle state of a staff-registered found item
type FoundItemStatus string

const (
	FoundItemInStorage FoundItemStatus = "InStorage"
	FoundItemMatched   FoundItemStatus = "Matched"
	FoundItemClaimed   FoundItemStatus = "Claimed"
	FoundItemDisposed  FoundItemStatus = "Disposed"
)

// MatchStatus is the state of a proposed pairing
type MatchStatus string

const (
	MatchPending   MatchStatus = "Pending"
	MatchConfirmed MatchStatus = "Confirmed"
	MatchRejected  MatchStatus = "Rejected"
)

// ParseLostItemStatus parses a status string from the API boundary
func ParseLostItemStatus(s string) (LostItemStatus, bool) {
	switch strings.ToLower(s) {
	case "open":
		return LostItemOpen, true
	case "matched":
		return LostItemMatched, true
	case "claimed":
		return LostItemClaimed, true
	case "closed", "cancelled":
		return LostItemClosed, true
	}
	return "", false
}

// ParseFoundItemStatus parses a status string from the API boundary.
// Legacy aliases AVAILABLE and IN_STORAGE map onto the canonical InStorage value.
func ParseFoundItemStatus(s string) (FoundItemStatus, bool) {
	switch strings.ToLower(s) {
	case "instorage", "in_storage", "available":
		return FoundItemInStorage, true
	case "matched":
		return FoundItemMatched, true
	case "claimed":
		return FoundItemClaimed, true
	case "disposed":
		return FoundItemDisposed, true
	}
	return "", false
}

// ParseMatchStatus parses a status string from the API boundary
func ParseMatchStatus(s string) (MatchStatus, bool) {
	switch strings.ToLower(s) {
	case "pending":
		return MatchPending, true
	case "confirmed":
		return MatchConfirmed, true
	case "rejected":
		return MatchRejected, true
	}
	return "", false
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a booking is successfully
// created. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	AccountID     uint64 `json:"account_id"`
	ThemeID       uint64 `json:"theme_id"`
	ThemeName     string `json:"theme_name"`
	BranchID      uint64 `json:"branch_id"`
	BranchName    string `json:"branch_name"`
	SlotTime      string `json:"slot_time"`
	Participants  int    `json:"participants"`
	TotalPrice    int64  `json:"total_price"`
	ConfirmedAt   string `json:"confirmed_at"`
}

package model

import "time"

// Reservation records a customer's booking of a theme at a specific slot
// time. A reservation is never physically deleted; state changes are
// expressed through the Status column. This struct corresponds to a row
// in the `reservations` table.
//
// Fields:
//  ID           – primary key identifier.
//  AccountID    – booking customer (nil once the account is deleted).
//  ThemeID      – booked theme.
//  SlotTime     – the reserved session start time (UTC).
//  Participants – number of players.
//  TotalPrice   – final charge in won, fixed at creation time.
//  Status       – one of the Reservation* constants.
//  HintCount    – hints used during the session.
//  IsSuccess    – whether the team escaped (nil until completed).
//  ClearTimeSec – escape time in seconds (nil until completed).
//  CreatedAt    – creation timestamp.
type Reservation struct {
    ID           uint64    // reservations.id
    AccountID    *uint64   // reservations.account_id (nullable)
    ThemeID      uint64    // reservations.theme_id
    SlotTime     time.Time // reservations.slot_time
    Participants int       // reservations.participants
    TotalPrice   int64     // reservations.total_price
    Status       string    // reservations.status
    HintCount    int       // reservations.hint_count
    IsSuccess    *bool     // reservations.is_success (nullable)
    ClearTimeSec *int      // reservations.clear_time_sec (nullable)
    CreatedAt    time.Time // reservations.created_at
}

// Reservation statuses. Confirmed is the only initial state. Completed,
// Cancelled and NoShow are terminal; CheckedIn can still move to
// Completed.
const (
    ReservationConfirmed = "Confirmed"
    ReservationCheckedIn = "CheckedIn"
    ReservationCompleted = "Completed"
    ReservationCancelled = "Cancelled"
    ReservationNoShow    = "NoShow"
)

// BlocksSlot reports whether a reservation in the given status still
// occupies its (theme, slot) pair. Only Confirmed and CheckedIn
// reservations prevent another booking of the same slot.
func BlocksSlot(status string) bool {
    return status == ReservationConfirmed || status == ReservationCheckedIn
}

// CanCancel reports whether the owner may still cancel. Only a Confirmed
// reservation can be cancelled.
func CanCancel(status string) bool { return status == ReservationConfirmed }

// CanCheckIn reports whether staff may check the party in.
func CanCheckIn(status string) bool { return status == ReservationConfirmed }

// CanMarkNoShow reports whether staff may mark the party a no-show.
func CanMarkNoShow(status string) bool { return status == ReservationConfirmed }

// Completion is intentionally unguarded: staff may complete a reservation
// from any status, including Cancelled. This mirrors how the venue
// operates today; see the boundary test before tightening it.

// TotalPrice computes the charge for a booking. The theme's discount rate
// does not participate in the calculation.
func TotalPrice(pricePerPerson int64, participants int) int64 {
    return pricePerPerson * int64(participants)
}

// ClearTimeSeconds converts the clear time entered by staff (minutes) to
// the seconds stored on the reservation.
func ClearTimeSeconds(minutes int) int { return minutes * 60 }

// SlotInPast reports whether the requested slot has already passed at the
// given reference time. Slots exactly at "now" are accepted.
func SlotInPast(slot, now time.Time) bool { return slot.Before(now) }

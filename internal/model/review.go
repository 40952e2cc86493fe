package model

import "time"

// Review is a customer's one-per-reservation rating of a completed
// session. This struct corresponds to a row in the `reviews` table.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reviewed reservation (unique).
//  AccountID     – author (nil once the account is deleted).
//  Rating        – 1 to 5 inclusive.
//  Comment       – optional free text.
//  CreatedAt     – creation timestamp.
type Review struct {
    ID            uint64    // reviews.id
    ReservationID uint64    // reviews.reservation_id
    AccountID     *uint64   // reviews.account_id (nullable)
    Rating        int       // reviews.rating
    Comment       string    // reviews.comment
    CreatedAt     time.Time // reviews.created_at
}

// ValidRating reports whether a submitted rating is within 1..5.
func ValidRating(n int) bool { return n >= 1 && n <= 5 }

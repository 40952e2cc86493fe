package model

import "time"

// Payment is the 1:1 side record created together with a reservation.
// The payment step is a stub: every booking is recorded as Paid with a
// virtual card. This struct corresponds to a row in the `payments` table.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – owning reservation (unique).
//  Method        – payment method label.
//  Amount        – charged amount in won.
//  Status        – Paid or Refunded.
//  PaidAt        – when the payment was recorded.
type Payment struct {
    ID            uint64    // payments.id
    ReservationID uint64    // payments.reservation_id
    Method        string    // payments.method
    Amount        int64     // payments.amount
    Status        string    // payments.status
    PaidAt        time.Time // payments.paid_at
}

// Payment statuses.
const (
    PaymentPaid     = "Paid"
    PaymentRefunded = "Refunded"
)

// VirtualCardMethod is the method recorded by the stub payment step.
const VirtualCardMethod = "가상 카드"

// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current account is not
// authorized to act on a resource owned by someone else, while
// ErrSlotTaken signals that a (theme, slot) pair is already booked.
package repository

import (
    "errors"
    "strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be performed
// because of conflicting state, such as writing a second review for a
// reservation that already has one. Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSlotTaken is returned when a reservation cannot be created because
// another Confirmed or CheckedIn reservation already occupies the same
// theme and slot time.
var ErrSlotTaken = errors.New("slot already reserved")

// ErrLoginIDExists and ErrPhoneExists are returned by account creation
// when the respective unique column collides.
var (
    ErrLoginIDExists = errors.New("login_id already exists")
    ErrPhoneExists   = errors.New("phone already exists")
)

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

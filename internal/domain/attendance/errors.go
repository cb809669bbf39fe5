package attendance

import "errors"

var (
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("no clock-in found for today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
	ErrRecordNotFound    = errors.New("attendance record not found")
)

package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/out errors
	ErrAlreadyCheckedIn     = errors.New("you have already checked in for this date")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out for this date")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrInvalidLocation      = errors.New("invalid location")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

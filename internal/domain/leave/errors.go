package leave

import "errors"

var (
	// Application errors
	ErrLeaveApplicationNotFound = errors.New("leave application not found")
	ErrOverlappingLeave         = errors.New("leave dates overlap an existing application")
	ErrInvalidStateTransition   = errors.New("invalid leave status transition")
	ErrExceedsMaxConsecutive    = errors.New("leave exceeds the maximum consecutive days for this type")
	ErrDocumentationRequired    = errors.New("supporting document is required for this leave")
	ErrAttachmentNotStored      = errors.New("leave application saved but the attachment could not be stored")

	// Leave type errors
	ErrUnknownLeaveType    = errors.New("unknown leave type")
	ErrLeaveTypeCodeExists = errors.New("leave type code already exists")
)

package service

import (
	apperrors "vtufest/backend/pkg/errors"
)

// ── 业务错误 ──
// 文案直接返回给前端

var (
	ErrCollegeNotFound = apperrors.NotFound("College not found")
	ErrCollegeLocked   = apperrors.Locked("College has final approval. Cannot modify assignments.")
)

var (
	ErrAddFieldsRequired        = apperrors.Validation("person_id, person_type, and event_type are required")
	ErrRemoveFieldsRequired     = apperrors.Validation("person_id and person_type are required")
	ErrInvalidPersonType        = apperrors.Validation(`person_type must be "student" or "accompanist"`)
	ErrInvalidEventType         = apperrors.Validation(`event_type must be "participating" or "accompanying"`)
	ErrAccompanistAsParticipant = apperrors.Validation("Accompanists cannot be participants")
	ErrStudentNotFound          = apperrors.NotFound("Student not found or does not belong to your college")
	ErrStudentNotApproved       = apperrors.Authorization("Only approved students can be assigned to events")
	ErrAccompanistNotFound      = apperrors.NotFound("Accompanist not found or does not belong to your college")
	ErrAssignmentExists         = apperrors.Conflict("Person is already assigned to this event")
	ErrAssignmentNotFound       = apperrors.NotFound("Assignment not found")
)

var (
	ErrManagerFieldsRequired = apperrors.Validation("manager_name, manager_email, and manager_phone are required")
	ErrManagerExists         = apperrors.Conflict("Team Manager already exists for this college")
	ErrEmailRegistered       = apperrors.Conflict("Email already registered")
	ErrProfileCompleted      = apperrors.Conflict("Profile already completed")
	ErrSessionIDRequired     = apperrors.Validation("session_id is required")
	ErrSessionInvalid        = apperrors.NotFound("Invalid or expired session")
	ErrSessionExpired        = apperrors.Validation("Session expired. Please restart.")
	ErrUserNotFound          = apperrors.NotFound("User not found")
)

func asAppError(err error) (*apperrors.Error, bool) {
	return apperrors.As(err)
}

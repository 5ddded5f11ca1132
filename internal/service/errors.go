package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrStageNotFound      = errors.New("stage not found")
	ErrNoteNotFound       = errors.New("note not found")

	ErrInviteExpired   = errors.New("invite has expired")
	ErrInviteExhausted = errors.New("invite usage exhausted")
	ErrAlreadyMember   = errors.New("user is already a member of this project")

	ErrNotMember        = errors.New("not a member of this project")
	ErrForbidden        = errors.New("insufficient role for this action")
	ErrOwnerCannotLeave = errors.New("owner cannot remove own membership")
	ErrOwnerImmutable   = errors.New("owner membership cannot be removed or reassigned")

	ErrProjectFull          = errors.New("project member limit reached")
	ErrProjectQuotaExceeded = errors.New("user project limit reached")

	ErrInvalidMaxUses     = errors.New("max uses must be positive")
	ErrExpiryInPast       = errors.New("expiry must be in the future")
	ErrNothingToUpdate    = errors.New("at least one field must be provided")
	ErrInvalidRole        = errors.New("role must be ADMIN or MEMBER")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrEmptyBody          = errors.New("body is required")
	ErrAssigneeNotMember  = errors.New("assignee must be a project member")
)

// IsValidation reports whether err is a malformed/out-of-range input error.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidMaxUses, ErrExpiryInPast, ErrNothingToUpdate, ErrInvalidRole,
		ErrNameRequired, ErrNameTooLong, ErrDescriptionTooLong,
		ErrTitleRequired, ErrInvalidPriority, ErrEmptyBody, ErrAssigneeNotMember,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

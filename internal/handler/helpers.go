package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhive/projecthub/internal/handler/middleware"
	"taskhive/projecthub/internal/service"
	jwtpkg "taskhive/projecthub/pkg/jwt"
	"taskhive/projecthub/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	claimsVal, exists := c.Get(middleware.ContextKeyUserClaims)
	if !exists {
		return uuid.Nil, ErrNoClaims
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	return uuid.Parse(claims.Subject)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// Sub-codes inside the 410 envelope: expired and exhausted invites are
// distinct failure kinds.
const (
	codeInviteExpired   = 4101
	codeInviteExhausted = 4102
)

// respondServiceError maps a service error to its stable HTTP shape.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrMembershipNotFound),
		errors.Is(err, service.ErrInviteNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrStageNotFound),
		errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInviteExpired):
		response.Gone(c, codeInviteExpired, err.Error())
	case errors.Is(err, service.ErrInviteExhausted):
		response.Gone(c, codeInviteExhausted, err.Error())
	case errors.Is(err, service.ErrAlreadyMember):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrOwnerCannotLeave),
		errors.Is(err, service.ErrOwnerImmutable):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrProjectFull),
		errors.Is(err, service.ErrProjectQuotaExceeded):
		response.UnprocessableEntity(c, err.Error())
	case service.IsValidation(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "internal error")
	}
}

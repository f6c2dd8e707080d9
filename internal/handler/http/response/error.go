package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/auth"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/department"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/jobtitle"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

const (
	codeInvalidDateRange       = "INVALID_DATE_RANGE"
	codeLeaveRequestOverlap    = "LEAVE_REQUEST_OVERLAP"
	codeInsufficientLeaveDays  = "INSUFFICIENT_LEAVE_DAYS"
	codeUniqueConstraint       = "UNIQUE_CONSTRAINT_VIOLATION"
	codeManagerViewOnly        = "MANAGER_VIEW_ONLY"
	codeInvalidStateTransition = "INVALID_STATUS_TRANSITION"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Typed errors carry details for the client
	var overlapErr *leave.OverlapError
	if errors.As(err, &overlapErr) {
		Conflict(w, codeLeaveRequestOverlap, "Leave request overlaps an existing request", map[string]interface{}{
			"conflictingRequestId": overlapErr.ConflictingID,
		})
		return
	}

	var insufficientErr *leave.InsufficientDaysError
	if errors.As(err, &insufficientErr) {
		errorResponse(w, http.StatusBadRequest, codeInsufficientLeaveDays, "Insufficient leave days", map[string]interface{}{
			"year":      insufficientErr.Year,
			"requested": insufficientErr.Requested,
			"remaining": insufficientErr.Remaining,
		})
		return
	}

	var viewOnlyErr *delegation.ViewOnlyError
	if errors.As(err, &viewOnlyErr) {
		errorResponse(w, http.StatusForbidden, codeManagerViewOnly, viewOnlyErr.Error(), map[string]interface{}{
			"secondManagerId":   viewOnlyErr.SecondManagerID,
			"secondManagerName": viewOnlyErr.SecondManagerName,
			"until":             viewOnlyErr.Until,
		})
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, err.Error())

	// Bad input that passed field validation
	case errors.Is(err, calendar.ErrInvalidDateRange):
		errorResponse(w, http.StatusBadRequest, codeInvalidDateRange, err.Error(), nil)
	case errors.Is(err, leave.ErrInsufficientLeaveDays):
		errorResponse(w, http.StatusBadRequest, codeInsufficientLeaveDays, err.Error(), nil)
	case errors.Is(err, leave.ErrNoChargeableDays),
		errors.Is(err, delegation.ErrInvalidWindow),
		errors.Is(err, delegation.ErrSameManager),
		errors.Is(err, delegation.ErrNotAManager),
		errors.Is(err, user.ErrSelfManager),
		errors.Is(err, user.ErrManagerCycle),
		errors.Is(err, user.ErrUserInactive),
		errors.Is(err, user.ErrReferenceNotFound),
		errors.Is(err, calendar.ErrInvalidWeekendConfiguration):
		BadRequest(w, err.Error(), nil)

	// Not found
	case errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, leave.ErrLeaveTypeNotFound),
		errors.Is(err, calendar.ErrHolidayNotFound),
		errors.Is(err, delegation.ErrSecondManagerNotFound),
		errors.Is(err, department.ErrDepartmentNotFound),
		errors.Is(err, jobtitle.ErrJobTitleNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, user.ErrManagerNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, err.Error())

	// Conflicts
	case errors.Is(err, leave.ErrLeaveRequestOverlap):
		Conflict(w, codeLeaveRequestOverlap, err.Error(), nil)
	case errors.Is(err, leave.ErrLeaveTypeExists),
		errors.Is(err, calendar.ErrHolidayExists),
		errors.Is(err, delegation.ErrSecondManagerExists),
		errors.Is(err, department.ErrDepartmentNameExists),
		errors.Is(err, jobtitle.ErrJobTitleNameExists),
		errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, codeUniqueConstraint, err.Error(), nil)
	case errors.Is(err, delegation.ErrOverlappingDelegation):
		Conflict(w, "DELEGATION_OVERLAP", err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidStatusTransition):
		Conflict(w, codeInvalidStateTransition, err.Error(), nil)

	// Authorization
	case errors.Is(err, delegation.ErrManagerViewOnly):
		errorResponse(w, http.StatusForbidden, codeManagerViewOnly, err.Error(), nil)
	case errors.Is(err, delegation.ErrForbidden),
		errors.Is(err, delegation.ErrOwnRequest),
		errors.Is(err, delegation.ErrDelegationForbidden),
		errors.Is(err, leave.ErrNotRequestOwner),
		errors.Is(err, leave.ErrUnauthorizedAccess),
		errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

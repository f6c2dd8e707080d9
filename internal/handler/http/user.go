package http

import (
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	AssignManager(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	Subordinates(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if !decodeJSON(w, r, "CreateUser", &req) {
		return
	}

	created, err := h.userService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", created)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	u, err := h.userService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, u)
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := user.ListUserRequest{
		Search:          q.Get("search"),
		DepartmentID:    q.Get("departmentId"),
		Role:            q.Get("role"),
		IncludeInactive: q.Get("includeInactive") == "true",
		Params:          pagination.FromQuery(r),
	}

	page, err := h.userService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, page)
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if !decodeJSON(w, r, "UpdateUser", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.userService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", updated)
}

// Deactivate implements UserHandler.
func (h *UserHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deactivated successfully", nil)
}

// AssignManager implements UserHandler.
func (h *UserHandlerImpl) AssignManager(w http.ResponseWriter, r *http.Request) {
	var req user.AssignManagerRequest
	if !decodeJSON(w, r, "AssignManager", &req) {
		return
	}
	req.UserID = chi.URLParam(r, "id")

	updated, err := h.userService.AssignManager(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager assigned successfully", updated)
}

// ResetPassword implements UserHandler.
func (h *UserHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.ResetPasswordRequest
	if !decodeJSON(w, r, "ResetPassword", &req) {
		return
	}
	req.UserID = id

	if err := h.userService.ResetPassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password has been reset successfully", nil)
}

// Subordinates implements UserHandler.
func (h *UserHandlerImpl) Subordinates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	reports, err := h.userService.Subordinates(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{
		userService: userService,
	}
}

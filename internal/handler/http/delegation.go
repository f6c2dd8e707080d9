package http

import (
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DelegationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdateEndDate(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ViewOnly(w http.ResponseWriter, r *http.Request)
}

type DelegationHandlerImpl struct {
	delegationService delegation.DelegationService
}

// List implements DelegationHandler.
func (d *DelegationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := delegation.ListSecondManagerRequest{
		ReplacedManagerID: q.Get("replacedManagerId"),
		SecondManagerID:   q.Get("secondManagerId"),
		ActiveOnly:        q.Get("active") == "true",
	}
	if req.ReplacedManagerID != "" {
		if err := requireUUID("replacedManagerId", req.ReplacedManagerID); err != nil {
			response.HandleError(w, err)
			return
		}
	}
	if req.SecondManagerID != "" {
		if err := requireUUID("secondManagerId", req.SecondManagerID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	items, err := d.delegationService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// Create implements DelegationHandler.
func (d *DelegationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req delegation.CreateSecondManagerRequest
	if !decodeJSON(w, r, "CreateSecondManager", &req) {
		return
	}

	created, err := d.delegationService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Second manager assigned successfully", created)
}

// UpdateEndDate implements DelegationHandler.
func (d *DelegationHandlerImpl) UpdateEndDate(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req delegation.UpdateSecondManagerRequest
	if !decodeJSON(w, r, "UpdateSecondManager", &req) {
		return
	}
	req.SecondManagerID = chi.URLParam(r, "secondManagerId")
	req.ReplacedManagerID = chi.URLParam(r, "replacedManagerId")
	req.StartDate = r.URL.Query().Get("startDate")

	updated, err := d.delegationService.UpdateEndDate(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Second manager updated successfully", updated)
}

// Delete implements DelegationHandler.
func (d *DelegationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	req := delegation.DeleteSecondManagerRequest{
		SecondManagerID:   chi.URLParam(r, "secondManagerId"),
		ReplacedManagerID: chi.URLParam(r, "replacedManagerId"),
		StartDate:         r.URL.Query().Get("startDate"),
	}

	if err := d.delegationService.Delete(r.Context(), actor, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Second manager removed successfully", nil)
}

// ViewOnly implements DelegationHandler.
func (d *DelegationHandlerImpl) ViewOnly(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	managerID := chi.URLParam(r, "managerId")
	if err := requireUUID("managerId", managerID); err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := d.delegationService.ViewOnlyFor(r.Context(), actor, managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

func NewDelegationHandler(delegationService delegation.DelegationService) DelegationHandler {
	return &DelegationHandlerImpl{
		delegationService: delegationService,
	}
}

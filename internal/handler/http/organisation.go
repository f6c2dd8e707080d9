package http

import (
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/department"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/jobtitle"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/service/organisation"
	"github.com/go-chi/chi/v5"
)

type OrganisationHandler interface {
	// Department
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	// Job title
	CreateJobTitle(w http.ResponseWriter, r *http.Request)
	GetJobTitle(w http.ResponseWriter, r *http.Request)
	ListJobTitles(w http.ResponseWriter, r *http.Request)
	UpdateJobTitle(w http.ResponseWriter, r *http.Request)
	DeleteJobTitle(w http.ResponseWriter, r *http.Request)
}

type organisationHandlerImpl struct {
	organisationService organisation.OrganisationService
}

func NewOrganisationHandler(organisationService organisation.OrganisationService) OrganisationHandler {
	return &organisationHandlerImpl{
		organisationService: organisationService,
	}
}

// ==================== DEPARTMENT ====================

func (h *organisationHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if !decodeJSON(w, r, "CreateDepartment", &req) {
		return
	}

	created, err := h.organisationService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", created)
}

func (h *organisationHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	d, err := h.organisationService.GetDepartment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, d)
}

func (h *organisationHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	req := department.ListDepartmentRequest{
		Search: r.URL.Query().Get("search"),
		Params: pagination.FromQuery(r),
	}

	page, err := h.organisationService.ListDepartments(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, page)
}

func (h *organisationHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.UpdateDepartmentRequest
	if !decodeJSON(w, r, "UpdateDepartment", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.organisationService.UpdateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", updated)
}

func (h *organisationHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.organisationService.DeleteDepartment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// ==================== JOB TITLE ====================

func (h *organisationHandlerImpl) CreateJobTitle(w http.ResponseWriter, r *http.Request) {
	var req jobtitle.CreateJobTitleRequest
	if !decodeJSON(w, r, "CreateJobTitle", &req) {
		return
	}

	created, err := h.organisationService.CreateJobTitle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job title created successfully", created)
}

func (h *organisationHandlerImpl) GetJobTitle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	j, err := h.organisationService.GetJobTitle(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, j)
}

func (h *organisationHandlerImpl) ListJobTitles(w http.ResponseWriter, r *http.Request) {
	req := jobtitle.ListJobTitleRequest{
		Search:       r.URL.Query().Get("search"),
		DepartmentID: r.URL.Query().Get("departmentId"),
		Params:       pagination.FromQuery(r),
	}

	page, err := h.organisationService.ListJobTitles(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, page)
}

func (h *organisationHandlerImpl) UpdateJobTitle(w http.ResponseWriter, r *http.Request) {
	var req jobtitle.UpdateJobTitleRequest
	if !decodeJSON(w, r, "UpdateJobTitle", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.organisationService.UpdateJobTitle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job title updated successfully", updated)
}

func (h *organisationHandlerImpl) DeleteJobTitle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.organisationService.DeleteJobTitle(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job title deleted successfully", nil)
}

package http

import (
	"context"
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	ReviewRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetManagerRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)

	GetRemainingDays(w http.ResponseWriter, r *http.Request)
	GetRemainingDaysForPeriod(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if !decodeJSON(w, r, "CreateType", &req) {
		return
	}

	created, err := l.leaveService.CreateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", created)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if !decodeJSON(w, r, "UpdateType", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := l.leaveService.UpdateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", updated)
}

// GetType implements LeaveHandler.
func (l *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveType, err := l.leaveService.GetType(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveType)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := l.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.leaveService.DeleteType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if !decodeJSON(w, r, "CreateRequest", &req) {
		return
	}

	created, err := l.leaveService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req leave.UpdateLeaveRequestRequest
	if !decodeJSON(w, r, "UpdateRequest", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := l.leaveService.UpdatePending(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", updated)
}

// ReviewRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ReviewRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req leave.ReviewLeaveRequestRequest
	if !decodeJSON(w, r, "ReviewRequest", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	reviewed, err := l.leaveService.Review(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reviewed successfully", reviewed)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	cancelled, err := l.leaveService.Cancel(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", cancelled)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := l.leaveService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	l.list(w, r, l.leaveService.ListForUser)
}

// GetManagerRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetManagerRequests(w http.ResponseWriter, r *http.Request) {
	l.list(w, r, l.leaveService.ListForReviewer)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	l.list(w, r, l.leaveService.ListAll)
}

type listFunc func(ctx context.Context, actor user.Actor, req leave.ListLeaveRequestRequest) (pagination.Page[leave.LeaveRequestResponse], error)

func (l *LeaveHandlerImpl) list(w http.ResponseWriter, r *http.Request, fn listFunc) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	year, err := queryYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	req := leave.ListLeaveRequestRequest{
		UserID:             q.Get("userId"),
		Status:             q.Get("status"),
		LeaveRequestTypeID: q.Get("leaveRequestTypeId"),
		Year:               year,
		Search:             q.Get("search"),
		Params:             pagination.FromQuery(r),
	}

	page, err := fn(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, page)
}

// GetRemainingDays implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRemainingDays(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	userID, typeID := chi.URLParam(r, "userId"), chi.URLParam(r, "typeId")
	if err := requireUUID("userId", userID); err != nil {
		response.HandleError(w, err)
		return
	}
	if err := requireUUID("typeId", typeID); err != nil {
		response.HandleError(w, err)
		return
	}
	year, err := queryYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := l.leaveService.GetRemainingDays(r.Context(), actor, userID, typeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// GetRemainingDaysForPeriod implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRemainingDaysForPeriod(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	req := leave.RemainingForPeriodRequest{
		UserID:             chi.URLParam(r, "userId"),
		LeaveRequestTypeID: chi.URLParam(r, "typeId"),
		StartDate:          r.URL.Query().Get("startDate"),
		EndDate:            r.URL.Query().Get("endDate"),
	}

	projection, err := l.leaveService.RemainingForPeriod(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, projection)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "userId")
	if err := requireUUID("userId", userID); err != nil {
		response.HandleError(w, err)
		return
	}
	year, err := queryYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balances, err := l.leaveService.Balances(r.Context(), actor, userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

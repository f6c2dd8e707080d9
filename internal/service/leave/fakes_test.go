package leave

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/jackc/pgx/v5"
)

type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fakeTypeRepo struct {
	types map[string]leave.LeaveRequestType
	seq   int
}

func (r *fakeTypeRepo) Create(ctx context.Context, t leave.LeaveRequestType) (leave.LeaveRequestType, error) {
	for _, existing := range r.types {
		if existing.Title == t.Title && !existing.IsDeleted() {
			return leave.LeaveRequestType{}, leave.ErrLeaveTypeExists
		}
	}
	r.seq++
	t.ID = fmt.Sprintf("99999999-0000-0000-0000-%012d", r.seq)
	r.types[t.ID] = t
	return t, nil
}

func (r *fakeTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequestType, error) {
	t, ok := r.types[id]
	if !ok {
		return leave.LeaveRequestType{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *fakeTypeRepo) List(ctx context.Context, includeDeleted bool) ([]leave.LeaveRequestType, error) {
	var out []leave.LeaveRequestType
	for _, t := range r.types {
		if includeDeleted || !t.IsDeleted() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeTypeRepo) Update(ctx context.Context, t leave.LeaveRequestType) (leave.LeaveRequestType, error) {
	if _, ok := r.types[t.ID]; !ok {
		return leave.LeaveRequestType{}, pgx.ErrNoRows
	}
	r.types[t.ID] = t
	return t, nil
}

func (r *fakeTypeRepo) SoftDelete(ctx context.Context, id string) error {
	t, ok := r.types[id]
	if !ok || t.IsDeleted() {
		return pgx.ErrNoRows
	}
	now := time.Now()
	t.DeletedAt = &now
	r.types[id] = t
	return nil
}

type fakeRequestRepo struct {
	requests []leave.LeaveRequest
	seq      int
}

func (r *fakeRequestRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.seq++
	req.ID = fmt.Sprintf("77777777-0000-0000-0000-%012d", r.seq)
	r.requests = append(r.requests, req)
	return req, nil
}

func (r *fakeRequestRepo) index(id string) int {
	for i, req := range r.requests {
		if req.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	i := r.index(id)
	if i < 0 {
		return leave.LeaveRequest{}, pgx.ErrNoRows
	}
	return r.requests[i], nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	i := r.index(req.ID)
	if i < 0 || r.requests[i].Status != leave.StatusPending {
		return leave.LeaveRequest{}, pgx.ErrNoRows
	}
	r.requests[i] = req
	return req, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	i := r.index(req.ID)
	if i < 0 || r.requests[i].Status != leave.StatusPending {
		return leave.LeaveRequest{}, pgx.ErrNoRows
	}
	r.requests[i] = req
	return req, nil
}

func (r *fakeRequestRepo) FindActiveInRange(ctx context.Context, q leave.ActiveRangeQuery) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.UserID != q.UserID || req.ID == q.ExcludeID {
			continue
		}
		if q.LeaveRequestTypeID != "" && req.LeaveRequestTypeID != q.LeaveRequestTypeID {
			continue
		}
		if !req.Blocks(q.Today) || !req.Overlaps(q.From, q.To) {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *fakeRequestRepo) List(ctx context.Context, f leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if f.UserID != "" && req.UserID != f.UserID {
			continue
		}
		if len(f.UserIDs) > 0 || f.ReviewerID != "" {
			match := req.ReviewerID != nil && *req.ReviewerID == f.ReviewerID
			for _, id := range f.UserIDs {
				if req.UserID == id {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		if f.Status != leave.StatusInvalid && req.EffectiveStatus(f.Today) != f.Status {
			continue
		}
		if !f.IncludeCancelled && req.Status == leave.StatusCancelled {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	users  map[string]user.User
	locked []string
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) LockByID(ctx context.Context, id string) (user.User, error) {
	r.locked = append(r.locked, id)
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) ListByManager(ctx context.Context, managerID string) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.ReportsTo(managerID) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeCalendar struct {
	weekend  calendar.WeekendConfiguration
	holidays []calendar.PublicHoliday
}

func (c *fakeCalendar) PolicyFor(ctx context.Context, start, end time.Time) (*calendar.Policy, error) {
	if start.After(end) {
		return nil, calendar.ErrInvalidDateRange
	}
	return calendar.NewPolicy(c.weekend, c.holidays), nil
}

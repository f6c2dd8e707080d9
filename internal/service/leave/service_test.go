package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
	delegationservice "github.com/dezGusty/mgmt-sim-25-sub002/internal/service/delegation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminID    = "a0000000-0000-0000-0000-000000000001"
	hrID       = "a0000000-0000-0000-0000-000000000002"
	managerID  = "a0000000-0000-0000-0000-000000000003"
	deputyID   = "a0000000-0000-0000-0000-000000000004"
	employeeID = "a0000000-0000-0000-0000-000000000005"
	peerID     = "a0000000-0000-0000-0000-000000000006"
)

var (
	today    = time.Date(2025, time.October, 15, 9, 0, 0, 0, time.UTC)
	admin    = user.Actor{UserID: adminID, Role: user.RoleAdmin}
	hr       = user.Actor{UserID: hrID, Role: user.RoleHR}
	manager  = user.Actor{UserID: managerID, Role: user.RoleManager}
	deputy   = user.Actor{UserID: deputyID, Role: user.RoleManager}
	employee = user.Actor{UserID: employeeID, Role: user.RoleEmployee}
	peer     = user.Actor{UserID: peerID, Role: user.RoleEmployee}
)

type fakeSecondManagers struct {
	items []delegation.SecondManager
}

func (r *fakeSecondManagers) Create(ctx context.Context, s delegation.SecondManager) (delegation.SecondManager, error) {
	r.items = append(r.items, s)
	return s, nil
}

func (r *fakeSecondManagers) Get(ctx context.Context, key delegation.Key) (delegation.SecondManager, error) {
	return delegation.SecondManager{}, delegation.ErrSecondManagerNotFound
}

func (r *fakeSecondManagers) List(ctx context.Context, f delegation.Filter) ([]delegation.SecondManager, error) {
	var out []delegation.SecondManager
	for _, it := range r.items {
		if f.SecondManagerID != "" && it.SecondManagerID != f.SecondManagerID {
			continue
		}
		if f.ReplacedManagerID != "" && it.ReplacedManagerID != f.ReplacedManagerID {
			continue
		}
		if f.ActiveAt != nil && !it.IsActive(*f.ActiveAt) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeSecondManagers) UpdateEndDate(ctx context.Context, key delegation.Key, end time.Time) (delegation.SecondManager, error) {
	return delegation.SecondManager{}, delegation.ErrSecondManagerNotFound
}

func (r *fakeSecondManagers) Delete(ctx context.Context, key delegation.Key) error {
	return nil
}

func (r *fakeSecondManagers) ListEndedBetween(ctx context.Context, from, to time.Time) ([]delegation.SecondManager, error) {
	return nil, nil
}

type fixture struct {
	svc         *LeaveServiceImpl
	tx          *passthroughTx
	types       *fakeTypeRepo
	requests    *fakeRequestRepo
	users       *fakeUserRepo
	delegations *fakeSecondManagers
	cal         *fakeCalendar

	annualID string
	unpaidID string
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func date(s string) time.Time {
	d, err := time.Parse(validator.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		tx:          &passthroughTx{},
		types:       &fakeTypeRepo{types: map[string]leave.LeaveRequestType{}},
		requests:    &fakeRequestRepo{},
		delegations: &fakeSecondManagers{},
		cal:         &fakeCalendar{weekend: calendar.DefaultWeekend()},
		users: &fakeUserRepo{users: map[string]user.User{
			adminID:    {ID: adminID, Role: user.RoleAdmin, IsActive: true},
			hrID:       {ID: hrID, Role: user.RoleHR, IsActive: true},
			managerID:  {ID: managerID, Role: user.RoleManager, IsActive: true},
			deputyID:   {ID: deputyID, FirstName: "Dana", LastName: "Deputy", Role: user.RoleManager, IsActive: true},
			employeeID: {ID: employeeID, Role: user.RoleEmployee, ManagerID: strPtr(managerID), IsActive: true},
			peerID:     {ID: peerID, Role: user.RoleEmployee, IsActive: true},
		}},
	}

	annual, err := f.types.Create(context.Background(), leave.LeaveRequestType{Title: "Annual", MaxDays: intPtr(10), IsPaid: true})
	require.NoError(t, err)
	unpaid, err := f.types.Create(context.Background(), leave.LeaveRequestType{Title: "Unpaid"})
	require.NoError(t, err)
	f.annualID, f.unpaidID = annual.ID, unpaid.ID

	authorizer := delegationservice.NewDelegationService(f.delegations, f.users)
	f.svc = NewLeaveService(f.tx, f.types, f.requests, f.users, authorizer, f.cal)
	f.svc.setClock(func() time.Time { return today })
	return f
}

// seed stores a request directly, bypassing validation.
func (f *fixture) seed(userID, typeID, start, end string, status leave.RequestStatus) leave.LeaveRequest {
	r, _ := f.requests.Create(context.Background(), leave.LeaveRequest{
		UserID:             userID,
		ReviewerID:         strPtr(managerID),
		LeaveRequestTypeID: typeID,
		StartDate:          date(start),
		EndDate:            date(end),
		Status:             status,
		CreatedBy:          userID,
	})
	return r
}

// delegateNow makes deputy the active second manager for manager.
func (f *fixture) delegateNow() {
	now := time.Now()
	f.delegations.items = append(f.delegations.items, delegation.SecondManager{
		SecondManagerID:   deputyID,
		ReplacedManagerID: managerID,
		StartDate:         now.Add(-time.Hour),
		EndDate:           now.Add(24 * time.Hour),
		SecondManagerName: strPtr("Dana Deputy"),
	})
}

func (f *fixture) create(actor user.Actor, typeID, start, end string) (leave.LeaveRequestResponse, error) {
	return f.svc.Create(context.Background(), actor, leave.CreateLeaveRequestRequest{
		LeaveRequestTypeID: typeID,
		StartDate:          start,
		EndDate:            end,
		Reason:             "time off",
	})
}

func TestCreate_InvalidDateRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(employee, f.annualID, "2025-11-10", "2025-11-07")
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	assert.ErrorIs(t, err, calendar.ErrInvalidDateRange)
	assert.Empty(t, f.requests.requests)
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.create(employee, f.annualID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, employeeID, resp.UserID)
	assert.Equal(t, "2025-11-03", resp.StartDate)
	require.NotNil(t, resp.ChargeableDays)
	assert.Equal(t, 5, *resp.ChargeableDays)
	require.NotNil(t, resp.ReviewerID)
	assert.Equal(t, managerID, *resp.ReviewerID)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{employeeID}, f.users.locked)
}

func TestCreate_Overlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.create(employee, f.annualID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)

	_, err = f.create(employee, f.unpaidID, "2025-11-06", "2025-11-11")
	require.ErrorIs(t, err, leave.ErrLeaveRequestOverlap)
	var overlap *leave.OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, first.ID, overlap.ConflictingID)

	has, err := f.svc.overlap.HasOverlap(ctx, employeeID, date("2025-11-07"), date("2025-11-07"), "")
	require.NoError(t, err)
	assert.True(t, has)

	// Another user's request never conflicts.
	_, err = f.create(peer, f.annualID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, manager, leave.ReviewLeaveRequestRequest{ID: first.ID, RequestStatus: "rejected"})
	require.NoError(t, err)

	_, err = f.create(employee, f.annualID, "2025-11-06", "2025-11-11")
	assert.NoError(t, err, "rejected requests do not block")
}

func TestCreate_OverlapIgnoresCancelled(t *testing.T) {
	f := newFixture(t)

	first, err := f.create(employee, f.annualID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), employee, first.ID)
	require.NoError(t, err)

	_, err = f.create(employee, f.annualID, "2025-11-03", "2025-11-07")
	assert.NoError(t, err)
}

func TestCreate_InsufficientDays(t *testing.T) {
	f := newFixture(t)
	f.seed(employeeID, f.annualID, "2025-11-03", "2025-11-07", leave.StatusApproved)
	f.seed(employeeID, f.annualID, "2025-11-10", "2025-11-14", leave.StatusPending)

	_, err := f.create(employee, f.annualID, "2025-11-17", "2025-11-17")
	require.ErrorIs(t, err, leave.ErrInsufficientLeaveDays)
	var insufficient *leave.InsufficientDaysError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 1, insufficient.Requested)
	assert.Equal(t, 0, insufficient.Remaining)
	assert.Equal(t, 2025, insufficient.Year)

	// Unlimited types never fail on balance.
	resp, err := f.create(employee, f.unpaidID, "2025-11-17", "2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, 33, *resp.ChargeableDays)
}

func TestCreate_NoChargeableDays(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(employee, f.annualID, "2025-11-08", "2025-11-09")
	assert.ErrorIs(t, err, leave.ErrNoChargeableDays)

	resp, err := f.create(employee, f.unpaidID, "2025-11-08", "2025-11-09")
	require.NoError(t, err, "unlimited types accept a weekend-only range")
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.ChargeableDays)
	assert.Equal(t, 0, *resp.ChargeableDays)
}

func TestCreate_RangeEndingBeforeToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create(employee, f.annualID, "2025-10-06", "2025-10-10")
	assert.ErrorIs(t, err, leave.ErrPastDateRange)
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	page, err := f.svc.ListForUser(ctx, employee, leave.ListLeaveRequestRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Data, "nothing is stored")

	// Started earlier, still running today: stays reviewable.
	running, err := f.create(employee, f.annualID, "2025-10-13", "2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, "pending", running.Status)

	reviewed, err := f.svc.Review(ctx, manager, leave.ReviewLeaveRequestRequest{ID: running.ID, RequestStatus: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", reviewed.Status)

	upcoming, err := f.create(employee, f.annualID, "2025-11-03", "2025-11-04")
	require.NoError(t, err)
	_, err = f.svc.UpdatePending(ctx, employee, leave.UpdateLeaveRequestRequest{
		ID:                 upcoming.ID,
		LeaveRequestTypeID: f.annualID,
		StartDate:          "2025-10-01",
		EndDate:            "2025-10-02",
	})
	assert.ErrorIs(t, err, leave.ErrPastDateRange)

	cancelled, err := f.svc.Cancel(ctx, employee, upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
}

func TestCreate_YearEndWithRecurringHoliday(t *testing.T) {
	f := newFixture(t)
	f.cal.holidays = []calendar.PublicHoliday{
		{Name: "New Year", Date: date("2025-01-01"), IsRecurring: true},
	}
	ctx := context.Background()

	resp, err := f.create(employee, f.annualID, "2025-12-29", "2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, 4, *resp.ChargeableDays)

	b2025, err := f.svc.GetRemainingDays(ctx, employee, employeeID, f.annualID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, b2025.Used)
	assert.Equal(t, 7, b2025.Remaining)

	b2026, err := f.svc.GetRemainingDays(ctx, employee, employeeID, f.annualID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, b2026.Used)
	assert.Equal(t, 9, b2026.Remaining)
}

func TestCreate_CrossYearCheckedPerYear(t *testing.T) {
	f := newFixture(t)
	f.seed(employeeID, f.annualID, "2026-01-05", "2026-01-16", leave.StatusApproved)

	_, err := f.create(employee, f.annualID, "2025-12-29", "2026-01-02")
	var insufficient *leave.InsufficientDaysError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2026, insufficient.Year)
	assert.Equal(t, 2, insufficient.Requested)
	assert.Equal(t, 0, insufficient.Remaining)
}

func TestCreate_OnBehalf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := leave.CreateLeaveRequestRequest{
		UserID:             employeeID,
		LeaveRequestTypeID: f.annualID,
		StartDate:          "2025-11-03",
		EndDate:            "2025-11-04",
	}

	_, err := f.svc.Create(ctx, peer, req)
	assert.ErrorIs(t, err, delegation.ErrForbidden)

	resp, err := f.svc.Create(ctx, manager, req)
	require.NoError(t, err)
	stored, _ := f.requests.GetByID(ctx, resp.ID)
	assert.Equal(t, managerID, stored.CreatedBy)
	assert.Equal(t, employeeID, stored.UserID)

	f.delegateNow()
	req.StartDate, req.EndDate = "2025-11-10", "2025-11-11"

	_, err = f.svc.Create(ctx, manager, req)
	assert.ErrorIs(t, err, delegation.ErrManagerViewOnly)

	_, err = f.svc.Create(ctx, deputy, req)
	assert.NoError(t, err)
}

func TestReview_SecondManagerActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create(employee, f.annualID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)
	f.delegateNow()

	_, err = f.svc.Review(ctx, manager, leave.ReviewLeaveRequestRequest{ID: created.ID, RequestStatus: "approved"})
	require.ErrorIs(t, err, delegation.ErrManagerViewOnly)
	var viewOnly *delegation.ViewOnlyError
	require.True(t, errors.As(err, &viewOnly))
	assert.Equal(t, deputyID, viewOnly.SecondManagerID)
	assert.Equal(t, "Dana Deputy", viewOnly.SecondManagerName)

	stored, _ := f.requests.GetByID(ctx, created.ID)
	assert.Equal(t, leave.StatusPending, stored.Status)

	resp, err := f.svc.Review(ctx, deputy, leave.ReviewLeaveRequestRequest{
		ID:              created.ID,
		RequestStatus:   "Approved",
		ReviewerComment: strPtr("enjoy"),
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ReviewerID)
	assert.Equal(t, deputyID, *resp.ReviewerID)
	assert.Equal(t, "enjoy", *resp.ReviewerComment)
	require.NotNil(t, resp.ReviewedAt)
	assert.Equal(t, today, *resp.ReviewedAt)
}

func TestReview_OnlyFromPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create(employee, f.annualID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, employee, leave.ReviewLeaveRequestRequest{ID: created.ID, RequestStatus: "approved"})
	assert.ErrorIs(t, err, delegation.ErrOwnRequest)

	_, err = f.svc.Review(ctx, peer, leave.ReviewLeaveRequestRequest{ID: created.ID, RequestStatus: "approved"})
	assert.ErrorIs(t, err, delegation.ErrForbidden)

	_, err = f.svc.Review(ctx, manager, leave.ReviewLeaveRequestRequest{ID: created.ID, RequestStatus: "cancelled"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Review(ctx, manager, leave.ReviewLeaveRequestRequest{ID: created.ID, RequestStatus: "approved"})
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, admin, leave.ReviewLeaveRequestRequest{ID: created.ID, RequestStatus: "rejected"})
	assert.ErrorIs(t, err, leave.ErrInvalidStatusTransition)

	expired := f.seed(employeeID, f.annualID, "2025-10-01", "2025-10-03", leave.StatusPending)
	_, err = f.svc.Review(ctx, manager, leave.ReviewLeaveRequestRequest{ID: expired.ID, RequestStatus: "approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestExpired)
	assert.ErrorIs(t, err, leave.ErrInvalidStatusTransition)

	_, err = f.svc.Review(ctx, manager, leave.ReviewLeaveRequestRequest{ID: "77777777-0000-0000-0000-999999999999", RequestStatus: "approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	approved := f.seed(employeeID, f.annualID, "2025-11-03", "2025-11-04", leave.StatusApproved)
	_, err := f.svc.Cancel(ctx, employee, approved.ID)
	assert.ErrorIs(t, err, leave.ErrInvalidStatusTransition)

	pending, err := f.create(employee, f.annualID, "2025-11-10", "2025-11-11")
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, peer, pending.ID)
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)

	resp, err := f.svc.Cancel(ctx, employee, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	_, err = f.svc.Cancel(ctx, employee, pending.ID)
	assert.ErrorIs(t, err, leave.ErrInvalidStatusTransition)

	page, err := f.svc.ListForUser(ctx, employee, leave.ListLeaveRequestRequest{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, approved.ID, page.Data[0].ID)

	page, err = f.svc.ListForUser(ctx, employee, leave.ListLeaveRequestRequest{Status: "cancelled"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, pending.ID, page.Data[0].ID)
}

func TestUpdatePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	short, err := f.types.Create(ctx, leave.LeaveRequestType{Title: "Short", MaxDays: intPtr(5)})
	require.NoError(t, err)

	created, err := f.create(employee, short.ID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)

	// Overlaps and uses the whole balance of the request it replaces.
	resp, err := f.svc.UpdatePending(ctx, employee, leave.UpdateLeaveRequestRequest{
		ID:                 created.ID,
		LeaveRequestTypeID: short.ID,
		StartDate:          "2025-11-04",
		EndDate:            "2025-11-10",
		Reason:             "moved",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-04", resp.StartDate)
	assert.Equal(t, 5, *resp.ChargeableDays)
	assert.Equal(t, "moved", resp.Reason)

	_, err = f.svc.UpdatePending(ctx, peer, leave.UpdateLeaveRequestRequest{
		ID: created.ID, LeaveRequestTypeID: short.ID, StartDate: "2025-11-04", EndDate: "2025-11-05",
	})
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)

	_, err = f.svc.Review(ctx, manager, leave.ReviewLeaveRequestRequest{ID: created.ID, RequestStatus: "approved"})
	require.NoError(t, err)

	_, err = f.svc.UpdatePending(ctx, employee, leave.UpdateLeaveRequestRequest{
		ID: created.ID, LeaveRequestTypeID: short.ID, StartDate: "2025-11-04", EndDate: "2025-11-05",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidStatusTransition)
}

func TestExpiredRequestsNeitherBlockNorCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	expired := f.seed(employeeID, f.annualID, "2025-10-06", "2025-10-10", leave.StatusPending)
	assert.Equal(t, leave.StatusExpired, expired.EffectiveStatus(today))

	bal, err := f.svc.GetRemainingDays(ctx, employee, employeeID, f.annualID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Used)
	assert.Equal(t, 10, bal.Remaining)

	f.seed(employeeID, f.annualID, "2025-10-08", "2025-10-09", leave.StatusPending)
	_, err = f.create(employee, f.annualID, "2025-10-09", "2025-10-16")
	assert.NoError(t, err, "an expired request does not block overlap")

	page, err := f.svc.ListForUser(ctx, employee, leave.ListLeaveRequestRequest{Status: "expired"})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
}

func TestBalances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(employeeID, f.annualID, "2025-11-03", "2025-11-05", leave.StatusApproved)
	f.seed(employeeID, f.annualID, "2025-11-10", "2025-11-11", leave.StatusRejected)
	f.seed(employeeID, f.annualID, "2025-11-17", "2025-11-18", leave.StatusPending)
	f.seed(employeeID, f.unpaidID, "2025-12-01", "2025-12-05", leave.StatusApproved)

	bal, err := f.svc.GetRemainingDays(ctx, employee, employeeID, f.annualID, 2025)
	require.NoError(t, err)
	assert.Equal(t, leave.Balance{
		LeaveRequestTypeID: f.annualID,
		LeaveTypeTitle:     "Annual",
		Year:               2025,
		TotalAllowed:       10,
		Used:               5,
		Remaining:          5,
	}, bal)

	all, err := f.svc.Balances(ctx, hr, employeeID, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Annual", all[0].LeaveTypeTitle)
	assert.Equal(t, 5, all[0].Used)
	assert.Equal(t, "Unpaid", all[1].LeaveTypeTitle)
	assert.True(t, all[1].HasUnlimitedDays)
	assert.Equal(t, 5, all[1].Used)

	_, err = f.svc.GetRemainingDays(ctx, peer, employeeID, f.annualID, 2025)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)

	f.delegateNow()
	_, err = f.svc.GetRemainingDays(ctx, manager, employeeID, f.annualID, 2025)
	assert.NoError(t, err, "view-only managers keep read access")

	_, err = f.svc.GetRemainingDays(ctx, employee, employeeID, "99999999-0000-0000-0000-999999999999", 2025)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestRemainingForPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(employeeID, f.annualID, "2025-11-03", "2025-11-12", leave.StatusApproved)

	p, err := f.svc.RemainingForPeriod(ctx, employee, leave.RemainingForPeriodRequest{
		UserID:             employeeID,
		LeaveRequestTypeID: f.annualID,
		StartDate:          "2025-12-29",
		EndDate:            "2026-01-02",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, p.RequestedDays)
	assert.False(t, p.Sufficient)
	require.Len(t, p.Years, 2)
	assert.Equal(t, leave.YearProjection{Year: 2025, TotalAllowed: 10, Used: 8, Remaining: 2, RequestedDays: 3, RemainingAfterRequest: -1}, p.Years[0])
	assert.Equal(t, leave.YearProjection{Year: 2026, TotalAllowed: 10, Used: 0, Remaining: 10, RequestedDays: 2, RemainingAfterRequest: 8}, p.Years[1])

	_, err = f.svc.RemainingForPeriod(ctx, employee, leave.RemainingForPeriodRequest{
		UserID:             employeeID,
		LeaveRequestTypeID: f.annualID,
		StartDate:          "2026-01-02",
		EndDate:            "2025-12-29",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestGetAndListAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create(employee, f.annualID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)
	_, err = f.create(peer, f.annualID, "2025-11-03", "2025-11-07")
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, employee, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, hr, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, peer, created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)

	page, err := f.svc.ListForReviewer(ctx, manager, leave.ListLeaveRequestRequest{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, created.ID, page.Data[0].ID)

	page, err = f.svc.ListForReviewer(ctx, deputy, leave.ListLeaveRequestRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	f.delegateNow()
	page, err = f.svc.ListForReviewer(ctx, deputy, leave.ListLeaveRequestRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	_, err = f.svc.Get(ctx, manager, created.ID)
	assert.NoError(t, err, "view-only managers keep read access")

	_, err = f.svc.ListAll(ctx, manager, leave.ListLeaveRequestRequest{})
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)

	page, err = f.svc.ListAll(ctx, admin, leave.ListLeaveRequestRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestLeaveTypes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateType(ctx, leave.CreateLeaveTypeRequest{Title: "Annual"})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeExists)

	_, err = f.svc.CreateType(ctx, leave.CreateLeaveTypeRequest{Title: " ", MaxDays: intPtr(-1)})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "title")
	assert.Contains(t, verrs.ToMap(), "maxDays")

	sick, err := f.svc.CreateType(ctx, leave.CreateLeaveTypeRequest{Title: "Sick", MaxDays: intPtr(5), IsPaid: true})
	require.NoError(t, err)
	assert.False(t, sick.HasUnlimitedDays)

	updated, err := f.svc.UpdateType(ctx, leave.UpdateLeaveTypeRequest{ID: sick.ID, Title: "Sick leave", IsPaid: true})
	require.NoError(t, err)
	assert.True(t, updated.HasUnlimitedDays)
	assert.Equal(t, "Sick leave", updated.Title)

	require.NoError(t, f.svc.DeleteType(ctx, sick.ID))
	_, err = f.svc.GetType(ctx, sick.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
	assert.ErrorIs(t, f.svc.DeleteType(ctx, sick.ID), leave.ErrLeaveTypeNotFound)

	_, err = f.create(employee, sick.ID, "2025-11-03", "2025-11-03")
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)

	types, err := f.svc.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/department"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestUser(t *testing.T, ctx context.Context, repo user.UserRepository, email string, role user.Role, managerID *string) user.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := repo.Create(ctx, user.User{
		FirstName:    "Test",
		LastName:     email,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		ManagerID:    managerID,
		IsActive:     true,
	})
	require.NoError(t, err)
	return created
}

func createTestLeaveType(t *testing.T, ctx context.Context, repo leave.LeaveTypeRepository, title string, maxDays *int) leave.LeaveRequestType {
	t.Helper()

	created, err := repo.Create(ctx, leave.LeaveRequestType{Title: title, MaxDays: maxDays, IsPaid: true})
	require.NoError(t, err)
	return created
}

// ===== USER REPOSITORY =====

func TestUserRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	manager := createTestUser(t, ctx, userRepo, "manager@example.com", user.RoleManager, nil)
	employee := createTestUser(t, ctx, userRepo, "employee@example.com", user.RoleEmployee, &manager.ID)

	got, err := userRepo.GetByEmail(ctx, "EMPLOYEE@example.com")
	require.NoError(t, err)
	assert.Equal(t, employee.ID, got.ID)
	assert.True(t, got.ReportsTo(manager.ID))

	reports, err := userRepo.ListByManager(ctx, manager.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, employee.ID, reports[0].ID)

	_, err = userRepo.Create(ctx, user.User{FirstName: "Dup", LastName: "Dup", Email: "manager@example.com", Role: user.RoleEmployee, IsActive: true})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = userRepo.GetByEmail(ctx, "notfound@example.com")
	assert.Equal(t, pgx.ErrNoRows, err)
}

func TestUserRepository_SetActive(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	u := createTestUser(t, ctx, userRepo, "leaver@example.com", user.RoleEmployee, nil)
	require.NoError(t, userRepo.SetActive(ctx, u.ID, false))

	got, err := userRepo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.Equal(t, pgx.ErrNoRows, userRepo.SetActive(ctx, "00000000-0000-0000-0000-000000000000", false))
}

// ===== LEAVE REQUEST REPOSITORY =====

func TestLeaveRequestRepository_FindActiveInRange(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)
	typeRepo := postgresql.NewLeaveTypeRepository(setup.DB)
	requestRepo := postgresql.NewLeaveRequestRepository(setup.DB)

	u := createTestUser(t, ctx, userRepo, "range@example.com", user.RoleEmployee, nil)
	annual := createTestLeaveType(t, ctx, typeRepo, "Annual", nil)

	insert := func(start, end time.Time, status leave.RequestStatus) leave.LeaveRequest {
		created, err := requestRepo.Create(ctx, leave.LeaveRequest{
			UserID:             u.ID,
			LeaveRequestTypeID: annual.ID,
			StartDate:          start,
			EndDate:            end,
			Status:             leave.StatusPending,
			CreatedBy:          u.ID,
		})
		require.NoError(t, err)
		if status != leave.StatusPending {
			created.Status = status
			created, err = requestRepo.UpdateStatus(ctx, created)
			require.NoError(t, err)
		}
		return created
	}

	approved := insert(date(2025, time.November, 3), date(2025, time.November, 7), leave.StatusApproved)
	insert(date(2025, time.November, 10), date(2025, time.November, 14), leave.StatusRejected)
	insert(date(2025, time.October, 1), date(2025, time.October, 3), leave.StatusPending)

	found, err := requestRepo.FindActiveInRange(ctx, leave.ActiveRangeQuery{
		UserID: u.ID,
		From:   date(2025, time.October, 1),
		To:     date(2025, time.November, 30),
		Today:  date(2025, time.October, 15),
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, approved.ID, found[0].ID)

	found, err = requestRepo.FindActiveInRange(ctx, leave.ActiveRangeQuery{
		UserID:    u.ID,
		From:      date(2025, time.November, 1),
		To:        date(2025, time.November, 30),
		Today:     date(2025, time.October, 15),
		ExcludeID: approved.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, found)

	// only pending rows can change status
	_, err = requestRepo.UpdateStatus(ctx, approved)
	assert.Equal(t, pgx.ErrNoRows, err)
}

// ===== SECOND MANAGER REPOSITORY =====

func TestSecondManagerRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)
	repo := postgresql.NewSecondManagerRepository(setup.DB)

	primary := createTestUser(t, ctx, userRepo, "primary@example.com", user.RoleManager, nil)
	deputy := createTestUser(t, ctx, userRepo, "deputy@example.com", user.RoleManager, nil)

	start := time.Date(2025, time.October, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.October, 10, 23, 59, 59, 0, time.UTC)

	created, err := repo.Create(ctx, delegation.SecondManager{
		SecondManagerID:   deputy.ID,
		ReplacedManagerID: primary.ID,
		StartDate:         start,
		EndDate:           end,
	})
	require.NoError(t, err)
	require.NotNil(t, created.SecondManagerName)

	_, err = repo.Create(ctx, created)
	assert.ErrorIs(t, err, delegation.ErrSecondManagerExists)

	at := time.Date(2025, time.October, 5, 12, 0, 0, 0, time.UTC)
	active, err := repo.List(ctx, delegation.Filter{ReplacedManagerID: primary.ID, ActiveAt: &at})
	require.NoError(t, err)
	require.Len(t, active, 1)

	key := delegation.Key{SecondManagerID: deputy.ID, ReplacedManagerID: primary.ID, StartDate: start}
	newEnd := time.Date(2025, time.October, 4, 23, 59, 59, 0, time.UTC)
	updated, err := repo.UpdateEndDate(ctx, key, newEnd)
	require.NoError(t, err)
	assert.True(t, updated.EndDate.Equal(newEnd))

	ended, err := repo.ListEndedBetween(ctx, time.Date(2025, time.October, 4, 0, 0, 0, 0, time.UTC), at)
	require.NoError(t, err)
	assert.Len(t, ended, 1)

	require.NoError(t, repo.Delete(ctx, key))
	assert.Equal(t, pgx.ErrNoRows, repo.Delete(ctx, key))
}

// ===== CALENDAR REPOSITORIES =====

func TestHolidayRepository_ListByYearIncludesRecurring(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(setup.DB)

	_, err := repo.Create(ctx, calendar.PublicHoliday{Name: "New Year", Date: date(2020, time.January, 1), IsRecurring: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, calendar.PublicHoliday{Name: "Bridge day", Date: date(2025, time.May, 2)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, calendar.PublicHoliday{Name: "Bridge day", Date: date(2025, time.May, 2)})
	assert.True(t, errors.Is(err, calendar.ErrHolidayExists))

	holidays, err := repo.ListByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "New Year", holidays[0].Name)

	holidays, err = repo.ListByYear(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, holidays, 2)
}

func TestWeekendRepository_SaveAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewWeekendRepository(setup.DB)

	_, _, err := repo.Get(ctx)
	assert.Equal(t, pgx.ErrNoRows, err)

	cfg, err := calendar.ParseWeekendConfiguration([]string{"Friday", "Saturday"}, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cfg))

	names, count, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.ElementsMatch(t, []string{"Friday", "Saturday"}, names)
}

// ===== ORGANISATION REPOSITORIES =====

func TestDepartmentRepository_SoftDeleteFreesName(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewDepartmentRepository(setup.DB)

	d, err := repo.Create(ctx, department.Department{Name: "Engineering"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, department.Department{Name: "engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	require.NoError(t, repo.SoftDelete(ctx, d.ID))
	_, err = repo.GetByID(ctx, d.ID)
	assert.Equal(t, pgx.ErrNoRows, err)

	_, err = repo.Create(ctx, department.Department{Name: "Engineering"})
	require.NoError(t, err)

	list, total, err := repo.List(ctx, department.DepartmentFilter{Search: "eng", Params: pagination.Params{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
	seq   int
}

func newFakeUserRepo(us ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]user.User{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) LockByID(ctx context.Context, id string) (user.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if _, err := r.GetByEmail(ctx, u.Email); err == nil {
		return user.User{}, user.ErrUserEmailExists
	}
	r.seq++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.seq)
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return user.User{}, pgx.ErrNoRows
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.IsActive = active
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, f user.UserFilter) ([]user.User, int64, error) {
	var out []user.User
	for _, u := range r.users {
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
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

const (
	bossID    = "11111111-1111-1111-1111-111111111111"
	managerID = "22222222-2222-2222-2222-222222222222"
	workerID  = "33333333-3333-3333-3333-333333333333"
)

func strPtr(s string) *string { return &s }

func orgChart() *fakeUserRepo {
	return newFakeUserRepo(
		user.User{ID: bossID, FirstName: "Bea", LastName: "Boss", Email: "bea@example.com", Role: user.RoleAdmin, IsActive: true},
		user.User{ID: managerID, FirstName: "Max", LastName: "Manager", Email: "max@example.com", Role: user.RoleManager, ManagerID: strPtr(bossID), IsActive: true},
		user.User{ID: workerID, FirstName: "Wes", LastName: "Worker", Email: "wes@example.com", Role: user.RoleEmployee, ManagerID: strPtr(managerID), IsActive: true},
	)
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	repo := orgChart()
	svc := NewUserService(repo)

	resp, err := svc.Create(ctx, user.CreateUserRequest{
		FirstName: "Nia",
		LastName:  "New",
		Email:     "  Nia@Example.com ",
		Password:  "correct-horse",
		Role:      "employee",
		ManagerID: strPtr(managerID),
	})
	require.NoError(t, err)
	assert.Equal(t, "nia@example.com", resp.Email)
	assert.Equal(t, "Nia New", resp.FullName)
	assert.True(t, resp.IsActive)

	stored := repo.users[resp.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	_, err = svc.Create(ctx, user.CreateUserRequest{FirstName: "A", LastName: "B", Email: "nia@example.com", Password: "password1", Role: "employee"})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = svc.Create(ctx, user.CreateUserRequest{FirstName: "A", LastName: "B", Email: "x@example.com", Password: "short", Role: "boss"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "role")

	_, err = svc.Create(ctx, user.CreateUserRequest{FirstName: "A", LastName: "B", Email: "y@example.com", Password: "password1", Role: "employee", ManagerID: strPtr("44444444-4444-4444-4444-444444444444")})
	assert.ErrorIs(t, err, user.ErrManagerNotFound)
}

func TestUserService_AssignManager(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(orgChart())

	_, err := svc.AssignManager(ctx, user.AssignManagerRequest{UserID: workerID, ManagerID: strPtr(workerID)})
	assert.ErrorIs(t, err, user.ErrSelfManager)

	_, err = svc.AssignManager(ctx, user.AssignManagerRequest{UserID: bossID, ManagerID: strPtr(workerID)})
	assert.ErrorIs(t, err, user.ErrManagerCycle)

	resp, err := svc.AssignManager(ctx, user.AssignManagerRequest{UserID: workerID, ManagerID: strPtr(bossID)})
	require.NoError(t, err)
	require.NotNil(t, resp.ManagerID)
	assert.Equal(t, bossID, *resp.ManagerID)

	resp, err = svc.AssignManager(ctx, user.AssignManagerRequest{UserID: workerID})
	require.NoError(t, err)
	assert.Nil(t, resp.ManagerID)
}

func TestUserService_SubordinatesAndDeactivate(t *testing.T) {
	ctx := context.Background()
	repo := orgChart()
	svc := NewUserService(repo)

	subs, err := svc.Subordinates(ctx, managerID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, workerID, subs[0].ID)

	_, err = svc.Subordinates(ctx, "44444444-4444-4444-4444-444444444444")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	require.NoError(t, svc.Deactivate(ctx, workerID))
	assert.False(t, repo.users[workerID].IsActive)
	assert.ErrorIs(t, svc.Deactivate(ctx, "44444444-4444-4444-4444-444444444444"), user.ErrUserNotFound)
}

func TestUserService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	repo := orgChart()
	svc := NewUserService(repo)

	require.NoError(t, svc.ResetPassword(ctx, user.ResetPasswordRequest{UserID: workerID, Password: "new-password"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[workerID].PasswordHash), []byte("new-password")))

	assert.Error(t, svc.ResetPassword(ctx, user.ResetPasswordRequest{UserID: workerID, Password: "short"}))
}

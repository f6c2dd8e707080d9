package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.reviewer_id, lr.leave_request_type_id,
	lr.start_date, lr.end_date, lr.reason, lr.status,
	lr.reviewer_comment, lr.reviewed_at, lr.created_by, lr.created_at, lr.updated_at,
	u.first_name || ' ' || u.last_name AS user_name,
	lt.title AS leave_type_title,
	rv.first_name || ' ' || rv.last_name AS reviewer_name
`

const leaveRequestJoins = `
	FROM leave_requests lr
	JOIN users u ON lr.user_id = u.id
	JOIN leave_request_types lt ON lr.leave_request_type_id = lt.id
	LEFT JOIN users rv ON lr.reviewer_id = rv.id
`

// blockingCondition keeps approved requests and pending ones that have not ended before the given date.
const blockingCondition = `(lr.status = 'approved' OR (lr.status = 'pending' AND lr.end_date >= $%d))`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&lr.ReviewerID,
		&lr.LeaveRequestTypeID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Status,
		&lr.ReviewerComment,
		&lr.ReviewedAt,
		&lr.CreatedBy,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.UserName,
		&lr.LeaveTypeTitle,
		&lr.ReviewerName,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, reviewer_id, leave_request_type_id,
			start_date, end_date, reason, status,
			created_by, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3,
			$4, $5, $6, $7,
			$8, NOW(), NOW()
		) RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		request.UserID, request.ReviewerID, request.LeaveRequestTypeID,
		request.StartDate, request.EndDate, request.Reason, request.Status,
		request.CreatedBy,
	).Scan(&id)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + ` WHERE lr.id = $1`

	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

// Update implements leave.LeaveRequestRepository. Returns pgx.ErrNoRows when the request is no longer pending.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET leave_request_type_id = $1, start_date = $2, end_date = $3, reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query,
		request.LeaveRequestTypeID, request.StartDate, request.EndDate, request.Reason, request.ID,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.LeaveRequest{}, pgx.ErrNoRows
	}

	return r.GetByID(ctx, request.ID)
}

// UpdateStatus implements leave.LeaveRequestRepository. The row must still be pending.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewer_id = $2, reviewer_comment = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query,
		request.Status, request.ReviewerID, request.ReviewerComment, request.ReviewedAt, request.ID,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.LeaveRequest{}, pgx.ErrNoRows
	}

	return r.GetByID(ctx, request.ID)
}

// FindActiveInRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) FindActiveInRange(ctx context.Context, rq leave.ActiveRangeQuery) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE lr.user_id = $1 AND lr.start_date <= $2 AND lr.end_date >= $3 AND " + fmt.Sprintf(blockingCondition, 4)
	args := []interface{}{rq.UserID, calendar.DateOf(rq.To), calendar.DateOf(rq.From), calendar.DateOf(rq.Today)}
	argIndex := 5

	if rq.LeaveRequestTypeID != "" {
		whereClause += fmt.Sprintf(" AND lr.leave_request_type_id = $%d", argIndex)
		args = append(args, rq.LeaveRequestTypeID)
		argIndex++
	}
	if rq.ExcludeID != "" {
		whereClause += fmt.Sprintf(" AND lr.id <> $%d", argIndex)
		args = append(args, rq.ExcludeID)
	}

	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + whereClause + ` ORDER BY lr.start_date ASC`

	return r.query(ctx, q, query, args...)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.user_id = $%d", argIndex))
		args = append(args, filter.UserID)
		argIndex++
	}

	// Scope of a reviewer: requests of the listed users or assigned to the reviewer.
	var scope []string
	if len(filter.UserIDs) > 0 {
		scope = append(scope, fmt.Sprintf("lr.user_id = ANY($%d)", argIndex))
		args = append(args, filter.UserIDs)
		argIndex++
	}
	if filter.ReviewerID != "" {
		scope = append(scope, fmt.Sprintf("lr.reviewer_id = $%d", argIndex))
		args = append(args, filter.ReviewerID)
		argIndex++
	}
	if len(scope) > 0 {
		conditions = append(conditions, "("+strings.Join(scope, " OR ")+")")
	}

	today := calendar.DateOf(filter.Today)
	switch filter.Status {
	case leave.StatusInvalid:
	case leave.StatusExpired:
		conditions = append(conditions, fmt.Sprintf("lr.status = 'pending' AND lr.end_date < $%d", argIndex))
		args = append(args, today)
		argIndex++
	case leave.StatusPending:
		conditions = append(conditions, fmt.Sprintf("lr.status = 'pending' AND lr.end_date >= $%d", argIndex))
		args = append(args, today)
		argIndex++
	default:
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if !filter.IncludeCancelled {
		conditions = append(conditions, "lr.status <> 'cancelled'")
	}

	if filter.LeaveRequestTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.leave_request_type_id = $%d", argIndex))
		args = append(args, filter.LeaveRequestTypeID)
		argIndex++
	}
	if filter.Year > 0 {
		from, to := calendar.YearBounds(filter.Year)
		conditions = append(conditions, fmt.Sprintf("lr.start_date <= $%d AND lr.end_date >= $%d", argIndex, argIndex+1))
		args = append(args, to, from)
		argIndex += 2
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR lr.reason ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + leaveRequestJoins + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + whereClause +
		fmt.Sprintf(" ORDER BY lr.start_date DESC, lr.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	requests, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

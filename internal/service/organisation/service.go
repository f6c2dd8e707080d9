package organisation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/department"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/jobtitle"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type OrganisationService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context, req department.ListDepartmentRequest) (pagination.Page[department.DepartmentResponse], error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Job title operations
	CreateJobTitle(ctx context.Context, req jobtitle.CreateJobTitleRequest) (jobtitle.JobTitleResponse, error)
	GetJobTitle(ctx context.Context, id string) (jobtitle.JobTitleResponse, error)
	ListJobTitles(ctx context.Context, req jobtitle.ListJobTitleRequest) (pagination.Page[jobtitle.JobTitleResponse], error)
	UpdateJobTitle(ctx context.Context, req jobtitle.UpdateJobTitleRequest) (jobtitle.JobTitleResponse, error)
	DeleteJobTitle(ctx context.Context, id string) error
}

type organisationServiceImpl struct {
	departmentRepo department.DepartmentRepository
	jobTitleRepo   jobtitle.JobTitleRepository
}

func NewOrganisationService(
	departmentRepo department.DepartmentRepository,
	jobTitleRepo jobtitle.JobTitleRepository,
) OrganisationService {
	return &organisationServiceImpl{
		departmentRepo: departmentRepo,
		jobTitleRepo:   jobTitleRepo,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *organisationServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	slog.Info("Department created", "department_id", created.ID, "name", created.Name)
	return department.NewDepartmentResponse(created), nil
}

func (s *organisationServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.getDepartment(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(d), nil
}

func (s *organisationServiceImpl) ListDepartments(ctx context.Context, req department.ListDepartmentRequest) (pagination.Page[department.DepartmentResponse], error) {
	filter := req.ToFilter()
	departments, total, err := s.departmentRepo.List(ctx, filter)
	if err != nil {
		return pagination.Page[department.DepartmentResponse]{}, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.NewDepartmentResponse(d))
	}
	return pagination.NewPage(responses, filter.Params, total), nil
}

func (s *organisationServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	updated, err := s.departmentRepo.Update(ctx, department.Department{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.DepartmentResponse{}, department.ErrDepartmentNotFound
		}
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(updated), nil
}

func (s *organisationServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	if err := s.departmentRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	slog.Info("Department deleted", "department_id", id)
	return nil
}

func (s *organisationServiceImpl) getDepartment(ctx context.Context, id string) (department.Department, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

// ==================== JOB TITLE OPERATIONS ====================

func (s *organisationServiceImpl) CreateJobTitle(ctx context.Context, req jobtitle.CreateJobTitleRequest) (jobtitle.JobTitleResponse, error) {
	if err := req.Validate(); err != nil {
		return jobtitle.JobTitleResponse{}, err
	}
	if err := s.ensureDepartment(ctx, req.DepartmentID); err != nil {
		return jobtitle.JobTitleResponse{}, err
	}

	created, err := s.jobTitleRepo.Create(ctx, jobtitle.JobTitle{
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return jobtitle.JobTitleResponse{}, err
	}

	slog.Info("Job title created", "job_title_id", created.ID, "name", created.Name)
	return jobtitle.NewJobTitleResponse(created), nil
}

func (s *organisationServiceImpl) GetJobTitle(ctx context.Context, id string) (jobtitle.JobTitleResponse, error) {
	j, err := s.jobTitleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobtitle.JobTitleResponse{}, jobtitle.ErrJobTitleNotFound
		}
		return jobtitle.JobTitleResponse{}, fmt.Errorf("failed to get job title: %w", err)
	}
	return jobtitle.NewJobTitleResponse(j), nil
}

func (s *organisationServiceImpl) ListJobTitles(ctx context.Context, req jobtitle.ListJobTitleRequest) (pagination.Page[jobtitle.JobTitleResponse], error) {
	if err := req.Validate(); err != nil {
		return pagination.Page[jobtitle.JobTitleResponse]{}, err
	}

	filter := req.ToFilter()
	titles, total, err := s.jobTitleRepo.List(ctx, filter)
	if err != nil {
		return pagination.Page[jobtitle.JobTitleResponse]{}, fmt.Errorf("failed to list job titles: %w", err)
	}

	responses := make([]jobtitle.JobTitleResponse, 0, len(titles))
	for _, j := range titles {
		responses = append(responses, jobtitle.NewJobTitleResponse(j))
	}
	return pagination.NewPage(responses, filter.Params, total), nil
}

func (s *organisationServiceImpl) UpdateJobTitle(ctx context.Context, req jobtitle.UpdateJobTitleRequest) (jobtitle.JobTitleResponse, error) {
	if err := req.Validate(); err != nil {
		return jobtitle.JobTitleResponse{}, err
	}
	if err := s.ensureDepartment(ctx, req.DepartmentID); err != nil {
		return jobtitle.JobTitleResponse{}, err
	}

	updated, err := s.jobTitleRepo.Update(ctx, jobtitle.JobTitle{
		ID:           req.ID,
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobtitle.JobTitleResponse{}, jobtitle.ErrJobTitleNotFound
		}
		return jobtitle.JobTitleResponse{}, err
	}
	return jobtitle.NewJobTitleResponse(updated), nil
}

func (s *organisationServiceImpl) DeleteJobTitle(ctx context.Context, id string) error {
	if err := s.jobTitleRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobtitle.ErrJobTitleNotFound
		}
		return fmt.Errorf("failed to delete job title: %w", err)
	}
	slog.Info("Job title deleted", "job_title_id", id)
	return nil
}

func (s *organisationServiceImpl) ensureDepartment(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	_, err := s.getDepartment(ctx, *id)
	return err
}

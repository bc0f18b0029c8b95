package departments

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"assetledger/pkg/apperr"
)

type DepartmentService interface {
	CreateDepartment(ctx context.Context, input Department) (Department, error)
	UpdateDepartment(ctx context.Context, input Department) (Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	GetDepartmentByID(ctx context.Context, id uuid.UUID) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
}

type departmentService struct {
	repo DepartmentRepository
}

func NewDepartmentService(repo DepartmentRepository) DepartmentService {
	return &departmentService{repo: repo}
}

func (s *departmentService) CreateDepartment(ctx context.Context, input Department) (Department, error) {
	if strings.TrimSpace(input.Code) == "" {
		return Department{}, apperr.Validate("Department code must not be blank")
	}
	if strings.TrimSpace(input.Name) == "" {
		return Department{}, apperr.Validate("Department name must not be blank")
	}

	input.ID = uuid.New()
	created, err := s.repo.CreateDepartment(ctx, input)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Department{}, apperr.Conflictf("Department code '%s' is already in use", input.Code)
		}
		return Department{}, err
	}
	return created, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, input Department) (Department, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Department{}, apperr.Validate("Department name must not be blank")
	}

	updated, err := s.repo.UpdateDepartment(ctx, input)
	if err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			return Department{}, apperr.NotFoundf("Department with id %s does not exist", input.ID)
		}
		return Department{}, err
	}
	return updated, nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteDepartment(ctx, id); err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			return apperr.NotFoundf("Department with id %s does not exist", id)
		}
		return err
	}
	return nil
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, id uuid.UUID) (Department, error) {
	d, err := s.repo.GetDepartmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			return Department{}, apperr.NotFoundf("Department with id %s does not exist", id)
		}
		return Department{}, err
	}
	return d, nil
}

func (s *departmentService) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.repo.ListDepartments(ctx)
}

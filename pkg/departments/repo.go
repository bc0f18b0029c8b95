package departments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDepartmentNotFound = errors.New("department not found")

type DepartmentRepository interface {
	CreateDepartment(ctx context.Context, input Department) (Department, error)
	UpdateDepartment(ctx context.Context, input Department) (Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	GetDepartmentByID(ctx context.Context, id uuid.UUID) (Department, error)
	GetDepartmentByCode(ctx context.Context, code string) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
}

type postgresDepartmentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &postgresDepartmentRepository{pool: pool}
}

const departmentColumns = `department_id, department_code, department_name,
	COALESCE(department_short_name, ''), COALESCE(description, ''), is_active,
	created_date, COALESCE(created_by, ''), modified_date, COALESCE(modified_by, '')`

func scanDepartment(row pgx.Row) (Department, error) {
	var d Department
	err := row.Scan(&d.ID, &d.Code, &d.Name, &d.ShortName, &d.Description,
		&d.IsActive, &d.CreatedDate, &d.CreatedBy, &d.ModifiedDate, &d.ModifiedBy)
	return d, err
}

func (r *postgresDepartmentRepository) CreateDepartment(ctx context.Context, input Department) (Department, error) {
	query := `INSERT INTO department (department_id, department_code, department_name, department_short_name, description, is_active, created_date, created_by, modified_date, modified_by)
			  VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), true, NOW(), NULLIF($6, ''), NOW(), NULLIF($6, ''))
			  RETURNING ` + departmentColumns

	row := r.pool.QueryRow(ctx, query, input.ID, input.Code, input.Name, input.ShortName, input.Description, input.CreatedBy)
	return scanDepartment(row)
}

func (r *postgresDepartmentRepository) UpdateDepartment(ctx context.Context, input Department) (Department, error) {
	query := `UPDATE department
			  SET department_name = $1, department_short_name = NULLIF($2, ''), description = NULLIF($3, ''), modified_date = NOW(), modified_by = NULLIF($4, '')
			  WHERE department_id = $5 AND is_active
			  RETURNING ` + departmentColumns

	row := r.pool.QueryRow(ctx, query, input.Name, input.ShortName, input.Description, input.ModifiedBy, input.ID)

	updated, err := scanDepartment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Department{}, ErrDepartmentNotFound
		}
		return Department{}, err
	}
	return updated, nil
}

func (r *postgresDepartmentRepository) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE department SET is_active = false, modified_date = NOW() WHERE department_id = $1 AND is_active", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (r *postgresDepartmentRepository) GetDepartmentByID(ctx context.Context, id uuid.UUID) (Department, error) {
	query := "SELECT " + departmentColumns + " FROM department WHERE department_id = $1 AND is_active"

	d, err := scanDepartment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Department{}, ErrDepartmentNotFound
		}
		return Department{}, err
	}
	return d, nil
}

func (r *postgresDepartmentRepository) GetDepartmentByCode(ctx context.Context, code string) (Department, error) {
	query := "SELECT " + departmentColumns + " FROM department WHERE department_code = $1 AND is_active"

	d, err := scanDepartment(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Department{}, ErrDepartmentNotFound
		}
		return Department{}, err
	}
	return d, nil
}

func (r *postgresDepartmentRepository) ListDepartments(ctx context.Context) ([]Department, error) {
	query := "SELECT " + departmentColumns + " FROM department WHERE is_active ORDER BY department_code"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

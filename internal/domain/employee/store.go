package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, COALESCE(employee_number, ''), first_name, last_name, email,
  COALESCE(phone, ''), COALESCE(position, ''),
  COALESCE(department_id::text, ''), COALESCE(manager_id::text, ''),
  salary, start_date, end_date, status, created_at, updated_at`

func scanEmployee(row interface{ Scan(...any) error }) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Phone, &emp.Position, &emp.DepartmentID, &emp.ManagerID,
		&emp.Salary, &emp.StartDate, &emp.EndDate, &emp.Status,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_number, first_name, last_name, email, phone, position, department_id, manager_id, salary, start_date, status)
    VALUES ($1,$2,$3,$4,$5,$6, NULLIF($7,'')::uuid, NULLIF($8,'')::uuid, $9, $10, $11)
    RETURNING `+employeeColumns+`
  `, emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Position,
		emp.DepartmentID, emp.ManagerID, emp.Salary, emp.StartDate, emp.Status)
	return scanEmployee(row)
}

func (s *Store) Get(ctx context.Context, employeeID string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, employeeID)
	return scanEmployee(row)
}

func (s *Store) Update(ctx context.Context, emp Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, email = $4, phone = $5, position = $6,
        department_id = NULLIF($7,'')::uuid, manager_id = NULLIF($8,'')::uuid,
        salary = $9, start_date = $10, end_date = $11, status = $12, updated_at = now()
    WHERE id = $1
    RETURNING `+employeeColumns+`
  `, emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Position,
		emp.DepartmentID, emp.ManagerID, emp.Salary, emp.StartDate, emp.EndDate, emp.Status)
	return scanEmployee(row)
}

func (s *Store) Delete(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE employees SET status = 'terminated', end_date = now(), updated_at = now() WHERE id = $1", employeeID)
	return err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	var clauses []string
	var args []any
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args), len(args), len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY last_name, first_name LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) Headcount(ctx context.Context) (HeadcountStats, error) {
	stats := HeadcountStats{ByStatus: map[string]int{}, ByDepartment: map[string]int{}}

	rows, err := s.DB.Query(ctx, "SELECT status, COUNT(1) FROM employees GROUP BY status")
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	deptRows, err := s.DB.Query(ctx, `
    SELECT COALESCE(d.name, 'Unassigned'), COUNT(1)
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE e.status = 'active'
    GROUP BY d.name
  `)
	if err != nil {
		return stats, err
	}
	defer deptRows.Close()
	for deptRows.Next() {
		var name string
		var count int
		if err := deptRows.Scan(&name, &count); err != nil {
			return stats, err
		}
		stats.ByDepartment[name] = count
	}
	return stats, deptRows.Err()
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(manager_id::text, ''), created_at
    FROM departments
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.ManagerID, &dept.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

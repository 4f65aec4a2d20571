package employee

import "time"

type Employee struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employeeNumber"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Position       string     `json:"position"`
	DepartmentID   string     `json:"departmentId"`
	ManagerID      string     `json:"managerId"`
	Salary         *float64   `json:"salary,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ManagerID string    `json:"managerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type HeadcountStats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	ByDepartment map[string]int `json:"byDepartment"`
}

type ListFilter struct {
	DepartmentID string
	Status       string
	Search       string
	Limit        int
	Offset       int
}

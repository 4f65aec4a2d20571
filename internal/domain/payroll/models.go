package payroll

import "time"

type SalaryRecord struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	BaseSalary float64   `json:"baseSalary"`
	Currency   string    `json:"currency"`
	Effective  time.Time `json:"effectiveFrom"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Payslip struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	EmployeeID  string    `json:"employeeId"`
	Gross       float64   `json:"gross"`
	Allowances  float64   `json:"allowances"`
	Deductions  float64   `json:"deductions"`
	Net         float64   `json:"net"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type Run struct {
	ID        string    `json:"id"`
	Month     string    `json:"month"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Stats struct {
	TotalMonthlyCost float64            `json:"totalMonthlyCost"`
	AverageSalary    float64            `json:"averageSalary"`
	Employees        int                `json:"employees"`
	ByDepartment     map[string]float64 `json:"byDepartment"`
}

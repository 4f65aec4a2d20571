package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/payroll"
)

// Service renders PDF reports from the other domains' read APIs.
type Service struct {
	Employees  *employee.Service
	Attendance *attendance.Service
	Payroll    *payroll.Service
}

func NewService(employees *employee.Service, att *attendance.Service, pay *payroll.Service) *Service {
	return &Service{Employees: employees, Attendance: att, Payroll: pay}
}

// AttendancePDF renders one employee's attendance for a month.
func (s *Service) AttendancePDF(ctx context.Context, employeeID string, monthStart time.Time) ([]byte, error) {
	emp, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	records, err := s.Attendance.MonthRecords(ctx, employeeID, monthStart)
	if err != nil {
		return nil, err
	}
	summary, err := s.Attendance.MonthSummary(ctx, employeeID, monthStart)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Attendance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", emp.FirstName, emp.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", monthStart.Format("January 2006")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(30, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Status", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Hours", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 8, "Notes", "1", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, rec := range records {
		pdf.CellFormat(30, 8, rec.WorkDate.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, rec.Status, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", rec.TotalHours), "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 8, rec.Notes, "1", 1, "", false, 0, "")
	}

	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Present: %d  Late: %d  Partial: %d  On leave: %d",
		summary.PresentDays, summary.LateDays, summary.PartialDays, summary.OnLeaveDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total hours: %.2f  Average per worked day: %.2f",
		summary.TotalHours, summary.AverageHours))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render attendance pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PayrollRunPDF renders the payslip table for a payroll run.
func (s *Service) PayrollRunPDF(ctx context.Context, runID string) ([]byte, error) {
	payslips, err := s.Payroll.Payslips(ctx, runID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payroll Run")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 8, "Employee", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Gross", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Deductions", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Net", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	var totalNet float64
	for _, slip := range payslips {
		pdf.CellFormat(60, 8, slip.EmployeeID, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", slip.Gross), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", slip.Deductions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", slip.Net), "1", 1, "R", false, 0, "")
		totalNet += slip.Net
	}
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Payslips: %d  Total net: %.2f", len(payslips), totalNet))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payroll pdf: %w", err)
	}
	return buf.Bytes(), nil
}

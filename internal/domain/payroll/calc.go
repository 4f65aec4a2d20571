package payroll

const (
	RunStatusDraft     = "draft"
	RunStatusFinalized = "finalized"

	// Flat percentages applied to every payslip.
	allowanceRate = 0.10
	deductionRate = 0.12
)

// ComputePayslip derives the payslip amounts from a base salary. Allowances
// are added on top of base, deductions are taken from the gross.
func ComputePayslip(baseSalary float64) (gross, allowances, deductions, net float64) {
	allowances = round2(baseSalary * allowanceRate)
	gross = round2(baseSalary + allowances)
	deductions = round2(gross * deductionRate)
	net = round2(gross - deductions)
	return gross, allowances, deductions, net
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

package payroll

import "testing"

func TestComputePayslip(t *testing.T) {
	gross, allowances, deductions, net := ComputePayslip(5000)
	if allowances != 500 {
		t.Fatalf("expected allowances 500, got %v", allowances)
	}
	if gross != 5500 {
		t.Fatalf("expected gross 5500, got %v", gross)
	}
	if deductions != 660 {
		t.Fatalf("expected deductions 660, got %v", deductions)
	}
	if net != 4840 {
		t.Fatalf("expected net 4840, got %v", net)
	}
}

func TestComputePayslipRounds(t *testing.T) {
	gross, allowances, deductions, net := ComputePayslip(3333.33)
	if allowances != 333.33 {
		t.Fatalf("expected allowances 333.33, got %v", allowances)
	}
	if gross != 3666.66 {
		t.Fatalf("expected gross 3666.66, got %v", gross)
	}
	if deductions != 440 {
		t.Fatalf("expected deductions 440, got %v", deductions)
	}
	if net != 3226.66 {
		t.Fatalf("expected net 3226.66, got %v", net)
	}
}

func TestComputePayslipZeroBase(t *testing.T) {
	gross, allowances, deductions, net := ComputePayslip(0)
	if gross != 0 || allowances != 0 || deductions != 0 || net != 0 {
		t.Fatalf("expected all zero, got %v %v %v %v", gross, allowances, deductions, net)
	}
}

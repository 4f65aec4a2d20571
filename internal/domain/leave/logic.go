package leave

import (
	"errors"
	"time"
)

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// Balances derives per-type balances from used-day totals for one year.
func Balances(used map[string]float64) []Balance {
	balances := make([]Balance, 0, len(DefaultEntitlements))
	for _, leaveType := range []string{"annual", "sick", "personal", "unpaid"} {
		entitlement := DefaultEntitlements[leaveType]
		usedDays := used[leaveType]
		balances = append(balances, Balance{
			LeaveType:   leaveType,
			Entitlement: entitlement,
			Used:        usedDays,
			Remaining:   entitlement - usedDays,
		})
	}
	return balances
}

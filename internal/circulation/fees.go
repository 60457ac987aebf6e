// internal/circulation/fees.go
package circulation

import "time"

// LateFee maps a due date and the current time to the overdue fee and the
// number of whole days overdue. Not overdue means zero on both counts.
//
// fee = min(MaxLateFee, firstTierRate*min(d,7) + secondTierRate*max(0,d-7))
func LateFee(dueDate, now time.Time) (float64, int) {
	days := int(now.Sub(dueDate).Hours() / 24)
	if days <= 0 {
		return 0, 0
	}

	var fee float64
	if days <= firstTierDays {
		fee = float64(days) * firstTierRate
	} else {
		fee = firstTierDays*firstTierRate + float64(days-firstTierDays)*secondTierRate
	}
	if fee > MaxLateFee {
		fee = MaxLateFee
	}
	return fee, days
}

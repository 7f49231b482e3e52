package sellers

import (
	"strings"
	"time"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
)

// CurrentPeriod renders now as the month+year string commissions settle in.
func CurrentPeriod(now time.Time) string {
	return now.Format(constvars.CommissionPeriodFmt)
}

// PaidForPeriod reports whether any historical payout already covers period.
// Period strings compare case-insensitively because historical records were
// captured with inconsistent casing.
func PaidForPeriod(payments []models.SellerPayment, period string) bool {
	for _, payment := range payments {
		if strings.EqualFold(payment.Period, period) {
			return true
		}
	}
	return false
}

// ComputeCommissionLines builds the per-doctor breakdown for a seller.
// Inactive doctors and doctors in cities without a configured fee contribute
// nothing.
func ComputeCommissionLines(doctors []models.Doctor, settings *models.Settings, commissionRate float64) (float64, []models.CommissionLine) {
	total := 0.0
	lines := []models.CommissionLine{}
	for _, doctor := range doctors {
		if doctor.SubscriptionStatus != constvars.SubscriptionStatusActive {
			continue
		}
		fee, ok := settings.FeeForCity(doctor.City)
		if !ok {
			continue
		}
		commission := fee * commissionRate
		total += commission
		lines = append(lines, models.CommissionLine{
			DoctorID:   doctor.ID,
			DoctorName: doctor.Name,
			City:       doctor.City,
			Fee:        fee,
			Commission: commission,
		})
	}
	return total, lines
}

// FilterPaymentsByRange keeps payments whose paymentDate falls inside the
// named range ending at now. Unknown range names behave like "all".
func FilterPaymentsByRange(payments []models.SellerPayment, rangeName string, now time.Time) []models.SellerPayment {
	var since time.Time
	switch strings.ToLower(rangeName) {
	case "today":
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	case "year":
		since = now.AddDate(-1, 0, 0)
	default:
		return payments
	}

	filtered := []models.SellerPayment{}
	for _, payment := range payments {
		if !payment.PaymentDate.Before(since) {
			filtered = append(filtered, payment)
		}
	}
	return filtered
}

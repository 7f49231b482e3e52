package booking

import (
	"strings"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
)

// ResolveCoupon matches code against the coupons reachable from doctorID:
// platform-wide coupons plus the doctor's own. Codes compare
// case-insensitively. The returned discount is clamped to [0, subtotal].
func ResolveCoupon(coupons []models.Coupon, code, doctorID string, subtotal float64) (float64, *models.Coupon, bool) {
	for i := range coupons {
		coupon := &coupons[i]
		if !strings.EqualFold(coupon.Code, code) {
			continue
		}
		if coupon.Scope != constvars.CouponScopeGeneral && coupon.Scope != doctorID {
			continue
		}

		var discount float64
		switch coupon.DiscountType {
		case constvars.DiscountTypePercentage:
			discount = subtotal * coupon.Value / 100
		default:
			discount = coupon.Value
		}

		if discount < 0 {
			discount = 0
		}
		if discount > subtotal {
			discount = subtotal
		}
		return discount, coupon, true
	}
	return 0, nil, false
}

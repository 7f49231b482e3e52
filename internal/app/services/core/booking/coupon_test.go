package booking

import (
	"testing"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestResolveCoupon(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "VERANO20", DiscountType: constvars.DiscountTypePercentage, Value: 20, Scope: constvars.CouponScopeGeneral},
		{Code: "FIJO100", DiscountType: constvars.DiscountTypeFixed, Value: 100, Scope: constvars.CouponScopeGeneral},
		{Code: "SOLODRA", DiscountType: constvars.DiscountTypeFixed, Value: 10, Scope: "doctor-1"},
	}

	t.Run("percentage discount on 80 with 20 percent is 16", func(t *testing.T) {
		discount, coupon, ok := ResolveCoupon(coupons, "VERANO20", "doctor-1", 80)
		assert.True(t, ok)
		assert.Equal(t, "VERANO20", coupon.Code)
		assert.InDelta(t, 16.0, discount, 1e-9)
	})

	t.Run("fixed discount clamps to subtotal", func(t *testing.T) {
		discount, _, ok := ResolveCoupon(coupons, "FIJO100", "doctor-1", 80)
		assert.True(t, ok)
		assert.InDelta(t, 80.0, discount, 1e-9, "fixed 100 on subtotal 80 clamps to 80")
	})

	t.Run("code matches case-insensitively", func(t *testing.T) {
		discount, _, ok := ResolveCoupon(coupons, "verano20", "doctor-1", 80)
		assert.True(t, ok)
		assert.InDelta(t, 16.0, discount, 1e-9)
	})

	t.Run("doctor-scoped coupon invisible to other doctors", func(t *testing.T) {
		_, _, ok := ResolveCoupon(coupons, "SOLODRA", "doctor-2", 80)
		assert.False(t, ok)
	})

	t.Run("doctor-scoped coupon resolves for its doctor", func(t *testing.T) {
		discount, _, ok := ResolveCoupon(coupons, "SOLODRA", "doctor-1", 80)
		assert.True(t, ok)
		assert.InDelta(t, 10.0, discount, 1e-9)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, _, ok := ResolveCoupon(coupons, "NADA", "doctor-1", 80)
		assert.False(t, ok)
	})

	t.Run("discount never negative", func(t *testing.T) {
		negative := []models.Coupon{{Code: "NEG", DiscountType: constvars.DiscountTypeFixed, Value: -5, Scope: constvars.CouponScopeGeneral}}
		discount, _, ok := ResolveCoupon(negative, "NEG", "doctor-1", 80)
		assert.True(t, ok)
		assert.Equal(t, 0.0, discount)
	})

	t.Run("zero subtotal bounds discount at zero", func(t *testing.T) {
		discount, _, ok := ResolveCoupon(coupons, "FIJO100", "doctor-1", 0)
		assert.True(t, ok)
		assert.Equal(t, 0.0, discount)
	})
}

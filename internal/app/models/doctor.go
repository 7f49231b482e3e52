package models

import "time"

type Doctor struct {
	ID              string        `bson:"_id,omitempty"`
	Name            string        `bson:"name"`
	Email           string        `bson:"email"`
	Specialty       string        `bson:"specialty"`
	City            string        `bson:"city"`
	Address         string        `bson:"address"`
	Phone           string        `bson:"phone"`
	ConsultationFee float64       `bson:"consultationFee"`
	SlotDuration    int           `bson:"slotDuration"`
	Schedule        WeekSchedule  `bson:"schedule"`
	Services        []Service     `bson:"services"`
	BankDetails     []BankAccount `bson:"bankDetails"`
	Coupons         []Coupon      `bson:"coupons"`

	// SellerID is set at creation and never changes; commission math joins
	// doctors to sellers through it live, not through a cached list.
	SellerID string `bson:"sellerId,omitempty"`

	Status             string     `bson:"status"`
	SubscriptionStatus string     `bson:"subscriptionStatus"`
	LastPaymentDate    *time.Time `bson:"lastPaymentDate,omitempty"`
	NextPaymentDate    *time.Time `bson:"nextPaymentDate,omitempty"`

	// Set by patient actions, cleared by the doctor's mark-all-read.
	HasUnreadBookings bool `bson:"hasUnreadBookings"`

	TimeModel `bson:",inline"`
}

// WeekSchedule maps lowercase english weekday names ("monday".."sunday") to
// that day's configuration.
type WeekSchedule map[string]DaySchedule

type DaySchedule struct {
	Active bool        `bson:"active" json:"active"`
	Slots  []TimeRange `bson:"slots" json:"slots"`
}

type TimeRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

type Service struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

type BankAccount struct {
	ID            string `bson:"id" json:"id"`
	BankName      string `bson:"bankName" json:"bankName"`
	AccountNumber string `bson:"accountNumber" json:"accountNumber"`
	HolderName    string `bson:"holderName" json:"holderName"`
}

// Coupon scope is either "general" (platform wide) or a doctor id.
type Coupon struct {
	Code         string  `bson:"code" json:"code"`
	DiscountType string  `bson:"discountType" json:"discountType"`
	Value        float64 `bson:"value" json:"value"`
	Scope        string  `bson:"scope" json:"scope"`
}

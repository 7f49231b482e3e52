package models

import "time"

type Seller struct {
	ID    string `bson:"_id,omitempty"`
	Name  string `bson:"name"`
	Email string `bson:"email"`

	// CommissionRate is a 0..1 fraction of the city subscription fee.
	CommissionRate float64 `bson:"commissionRate"`

	TimeModel `bson:",inline"`
}

// SellerPayment is an immutable payout snapshot: the doctors and per-doctor
// commissions included are recorded at payment time and never recomputed.
type SellerPayment struct {
	ID          string           `bson:"_id,omitempty"`
	SellerID    string           `bson:"sellerId"`
	Period      string           `bson:"period"` // e.g. "January 2026", matched case-insensitively
	PaymentDate time.Time        `bson:"paymentDate"`
	Total       float64          `bson:"total"`
	Breakdown   []CommissionLine `bson:"breakdown"`
	Unread      bool             `bson:"unread"`
	TimeModel   `bson:",inline"`
}

type CommissionLine struct {
	DoctorID   string  `bson:"doctorId" json:"doctorId"`
	DoctorName string  `bson:"doctorName" json:"doctorName"`
	City       string  `bson:"city" json:"city"`
	Fee        float64 `bson:"fee" json:"fee"`
	Commission float64 `bson:"commission" json:"commission"`
}

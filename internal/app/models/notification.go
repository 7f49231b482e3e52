package models

import "time"

// NotificationKey identifies a notification structurally. Two scans of the
// same entity snapshot derive identical keys, which is the sole dedup
// mechanism: no string concatenation, so ids cannot collide across kinds.
type NotificationKey struct {
	Kind     string `bson:"kind" json:"kind"`
	EntityID string `bson:"entityId" json:"entityId"`
	SubKey   string `bson:"subKey" json:"subKey"`
}

type Notification struct {
	ID        string          `bson:"_id,omitempty"`
	UserID    string          `bson:"userId"`
	Key       NotificationKey `bson:"key"`
	Title     string          `bson:"title"`
	Body      string          `bson:"body"`
	Read      bool            `bson:"read"`
	CreatedAt time.Time       `bson:"createdAt"`
}

// Notification kinds per role variant.
const (
	NotifKindBookingCreated      = "booking_created"
	NotifKindPaymentApproved     = "payment_approved"
	NotifKindAttendanceSet       = "attendance_set"
	NotifKindPatientConfirmation = "patient_confirmation"
	NotifKindChatMessage         = "chat_message"
	NotifKindSellerPayout        = "seller_payout"
	NotifKindDoctorPayment       = "doctor_payment"
	NotifKindSupportReply        = "support_reply"
)

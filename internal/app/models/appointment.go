package models

import "time"

// Appointment is created once by the booking workflow and afterwards mutated
// only through the lifecycle usecase. It is never deleted in normal flow.
type Appointment struct {
	ID        string `bson:"_id,omitempty"`
	PatientID string `bson:"patientId"`
	DoctorID  string `bson:"doctorId"`

	Date string `bson:"date"` // YYYY-MM-DD
	Time string `bson:"time"` // HH:MM

	// Services and ConsultationFee are snapshots taken at commit time; later
	// changes to the doctor's catalog must not alter past appointments.
	Services        []Service `bson:"services"`
	ConsultationFee float64   `bson:"consultationFee"`
	CouponCode      string    `bson:"couponCode,omitempty"`
	Discount        float64   `bson:"discount"`
	TotalPrice      float64   `bson:"totalPrice"`

	PaymentMethod   string `bson:"paymentMethod"`
	BankAccountID   string `bson:"bankAccountId,omitempty"`
	PaymentProofURL string `bson:"paymentProofUrl,omitempty"`
	PaymentStatus   string `bson:"paymentStatus"`

	// Attendance and PatientConfirmationStatus are independent tri-states.
	Attendance                string `bson:"attendance"`
	PatientConfirmationStatus string `bson:"patientConfirmationStatus"`

	ClinicalNotes string `bson:"clinicalNotes,omitempty"`
	Prescription  string `bson:"prescription,omitempty"`

	Messages        []ChatMessage `bson:"messages,omitempty"`
	UnreadByDoctor  bool          `bson:"unreadByDoctor"`
	UnreadByPatient bool          `bson:"unreadByPatient"`

	TimeModel `bson:",inline"`
}

// ChatMessage entries are append-only; the timestamp is server-assigned.
type ChatMessage struct {
	ID     string    `bson:"id" json:"id"`
	Sender string    `bson:"sender" json:"sender"` // patient|doctor
	Text   string    `bson:"text" json:"text"`
	SentAt time.Time `bson:"sentAt" json:"sentAt"`
}

// Locked reports whether attendance left Pendiente; a locked appointment's
// services and price are read-only.
func (a *Appointment) Locked() bool {
	return a.Attendance != "" && a.Attendance != "Pendiente"
}

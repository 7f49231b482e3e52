package models

import "time"

// DoctorPayment records a doctor's subscription fee payment, reviewed by an
// admin. The proof is an opaque uploaded-file reference, never verified
// against any gateway.
type DoctorPayment struct {
	ID          string    `bson:"_id,omitempty"`
	DoctorID    string    `bson:"doctorId"`
	Period      string    `bson:"period"`
	Amount      float64   `bson:"amount"`
	ProofURL    string    `bson:"proofUrl,omitempty"`
	Status      string    `bson:"status"` // Pendiente|Pagado
	PaymentDate time.Time `bson:"paymentDate"`
	Unread      bool      `bson:"unread"`
	TimeModel   `bson:",inline"`
}

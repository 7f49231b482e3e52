package requests

type StartBooking struct {
	DoctorID string `json:"doctor_id" validate:"required"`
}

type SelectDateTime struct {
	Date string `json:"date" validate:"required,calendar_date"`
	Time string `json:"time" validate:"required,time_of_day"`
}

type ToggleService struct {
	ServiceID string `json:"service_id" validate:"required"`
}

type SelectPayment struct {
	Method string `json:"method" validate:"required,payment_method"`

	// Required only for bank transfers, enforced by the workflow guard.
	BankAccountID   string `json:"bank_account_id"`
	PaymentProofURL string `json:"payment_proof_url"`
}

type ApplyCoupon struct {
	Code string `json:"code" validate:"required"`
}

type BookingBack struct {
	To string `json:"to" validate:"required,oneof=selectDateTime selectServices"`
}

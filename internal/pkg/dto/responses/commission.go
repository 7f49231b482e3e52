package responses

type CommissionSummary struct {
	Period    string           `json:"period"`
	Pending   float64          `json:"pending"`
	Breakdown []CommissionLine `json:"breakdown"`
	History   []PaymentRecord  `json:"history"`
}

type CommissionLine struct {
	DoctorID   string  `json:"doctor_id"`
	DoctorName string  `json:"doctor_name"`
	City       string  `json:"city"`
	MonthlyFee float64 `json:"monthly_fee"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
}

type PaymentRecord struct {
	ID       string  `json:"id"`
	Period   string  `json:"period"`
	Amount   float64 `json:"amount"`
	PaidAt   string  `json:"paid_at"`
	ProofURL string  `json:"proof_url,omitempty"`
}

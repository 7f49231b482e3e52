package responses

type Availability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type BookingDraft struct {
	DoctorID       string           `json:"doctor_id"`
	DoctorName     string           `json:"doctor_name"`
	State          string           `json:"state"`
	Date           string           `json:"date,omitempty"`
	Time           string           `json:"time,omitempty"`
	Services       []BookingService `json:"services"`
	Subtotal       float64          `json:"subtotal"`
	CouponCode     string           `json:"coupon_code,omitempty"`
	Discount       float64          `json:"discount"`
	Total          float64          `json:"total"`
	PaymentMethod  string           `json:"payment_method,omitempty"`
	AvailableSlots []string         `json:"available_slots,omitempty"`
}

type BookingService struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type ConfirmBooking struct {
	AppointmentID string  `json:"appointment_id"`
	Total         float64 `json:"total"`
	PaymentStatus string  `json:"payment_status"`
}

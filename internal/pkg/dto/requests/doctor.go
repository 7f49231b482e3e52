package requests

type ScheduleDay struct {
	Active bool            `json:"active"`
	Slots  []ScheduleRange `json:"slots" validate:"dive"`
}

type ScheduleRange struct {
	Start string `json:"start" validate:"required,time_of_day"`
	End   string `json:"end" validate:"required,time_of_day"`
}

type UpdateSchedule struct {
	Schedule     map[string]ScheduleDay `json:"schedule" validate:"required"`
	SlotDuration int                    `json:"slot_duration" validate:"required,gt=0"`
}

type UpdateServices struct {
	Services []ServiceItem `json:"services" validate:"required,dive"`
}

type ServiceItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type UpdateCoupons struct {
	Coupons []CouponItem `json:"coupons" validate:"dive"`
}

type CouponItem struct {
	Code         string  `json:"code" validate:"required"`
	DiscountType string  `json:"discount_type" validate:"required,discount_type"`
	Value        float64 `json:"value" validate:"gt=0"`
	Scope        string  `json:"scope" validate:"required"`
}

type UpdateBankDetails struct {
	BankDetails []BankAccountItem `json:"bank_details" validate:"dive"`
}

type BankAccountItem struct {
	ID            string `json:"id"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	HolderName    string `json:"holder_name" validate:"required"`
}

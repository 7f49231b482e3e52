package requests

type RegisterPatient struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,password"`
	RetypePassword string `json:"retype_password" validate:"required"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
}

type RegisterDoctor struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,password"`
	RetypePassword  string  `json:"retype_password" validate:"required"`
	Specialty       string  `json:"specialty" validate:"required"`
	City            string  `json:"city" validate:"required"`
	Address         string  `json:"address"`
	Phone           string  `json:"phone"`
	ConsultationFee float64 `json:"consultation_fee" validate:"gte=0"`
	SlotDuration    int     `json:"slot_duration" validate:"required,gt=0"`

	// SellerID links the doctor to the referring seller forever; it cannot
	// be changed after registration.
	SellerID string `json:"seller_id"`
}

type RegisterSeller struct {
	Name           string  `json:"name" validate:"required,min=2,max=100"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,password"`
	RetypePassword string  `json:"retype_password" validate:"required"`
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=1"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

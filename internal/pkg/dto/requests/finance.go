package requests

type SubmitDoctorPayment struct {
	Period   string  `json:"period" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	ProofURL string  `json:"proof_url"`
}

type UpdateCityFees struct {
	CityFees []CityFeeItem `json:"city_fees" validate:"required,dive"`
}

type CityFeeItem struct {
	City       string  `json:"city" validate:"required"`
	MonthlyFee float64 `json:"monthly_fee" validate:"gte=0"`
}

type CreateMarketingMaterial struct {
	Title string `json:"title" validate:"required,max=200"`
}

package responses

type RegisterAccount struct {
	AccountID string `json:"account_id"`
	ProfileID string `json:"profile_id"`
	Role      string `json:"role"`
}

type Login struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ProfileID string `json:"profile_id"`
}

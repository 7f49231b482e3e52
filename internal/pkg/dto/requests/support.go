package requests

type CreateTicket struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Text    string `json:"text" validate:"required,max=2000"`
}

type ReplyTicket struct {
	Text string `json:"text" validate:"required,max=2000"`
}

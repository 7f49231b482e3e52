package contracts

import "context"

type MailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type MailerQueue interface {
	Enqueue(ctx context.Context, job MailJob) error
}

package models

import "time"

type SupportTicket struct {
	ID         string          `bson:"_id,omitempty"`
	AuthorID   string          `bson:"authorId"`
	AuthorRole string          `bson:"authorRole"`
	Subject    string          `bson:"subject"`
	Status     string          `bson:"status"` // open|closed
	Messages   []TicketMessage `bson:"messages"`

	UnreadByAuthor bool `bson:"unreadByAuthor"`
	UnreadByAdmin  bool `bson:"unreadByAdmin"`

	TimeModel `bson:",inline"`
}

type TicketMessage struct {
	ID     string    `bson:"id" json:"id"`
	Sender string    `bson:"sender" json:"sender"` // author role or "admin"
	Text   string    `bson:"text" json:"text"`
	SentAt time.Time `bson:"sentAt" json:"sentAt"`
}

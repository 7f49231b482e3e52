package models

import "time"

// Account carries credentials and the role tag only. Role-specific data lives
// in the Patient/Doctor/Seller documents referenced by ProfileID, so no
// document carries null fields for roles it does not have.
type Account struct {
	ID        string `bson:"_id,omitempty"`
	Email     string `bson:"email"`
	Password  string `bson:"password"`
	Role      string `bson:"role"`
	ProfileID string `bson:"profileId"`
	TimeModel `bson:",inline"`
}

// Session is the redis-persisted caller identity. It is passed explicitly to
// every operation that needs to know who is acting; there is no ambient
// current-user global.
type Session struct {
	SessionID string    `json:"sessionId"`
	AccountID string    `json:"accountId"`
	ProfileID string    `json:"profileId"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) IsPatient() bool { return s.Role == "patient" }
func (s *Session) IsDoctor() bool  { return s.Role == "doctor" }
func (s *Session) IsSeller() bool  { return s.Role == "seller" }
func (s *Session) IsAdmin() bool   { return s.Role == "admin" }

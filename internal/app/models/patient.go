package models

type Patient struct {
	ID        string `bson:"_id,omitempty"`
	Name      string `bson:"name"`
	Email     string `bson:"email"`
	Phone     string `bson:"phone"`
	City      string `bson:"city"`
	TimeModel `bson:",inline"`
}

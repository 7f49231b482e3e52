package models

import "strings"

// Settings is a single-document collection holding platform configuration
// the admin edits at runtime.
type Settings struct {
	ID        string    `bson:"_id,omitempty"`
	CityFees  []CityFee `bson:"cityFees"`
	TimeModel `bson:",inline"`
}

type CityFee struct {
	City       string  `bson:"city" json:"city"`
	MonthlyFee float64 `bson:"monthlyFee" json:"monthlyFee"`
}

// FeeForCity returns the subscription fee configured for city, matched
// case-insensitively the way period strings are matched elsewhere.
func (s *Settings) FeeForCity(city string) (float64, bool) {
	for _, entry := range s.CityFees {
		if strings.EqualFold(entry.City, city) {
			return entry.MonthlyFee, true
		}
	}
	return 0, false
}

package entity

type QualificationType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// ValidityYears of zero means the qualification never expires.
	ValidityYears int `json:"validity_years"`
}

type Qualification struct {
	ID           int64  `json:"id"`
	TypeID       int64  `json:"type"`
	TypeName     string `json:"type_name,omitempty"`
	MemberID     int64  `json:"member"`
	DateAcquired *Date  `json:"date_acquired"`
	DateExpires  *Date  `json:"date_expires"`
	Notes        string `json:"notes,omitempty"`
}

func (q *Qualification) Expired(today Date) bool {
	if q.DateExpires == nil {
		return false
	}
	return q.DateExpires.Time().Before(today.Time())
}

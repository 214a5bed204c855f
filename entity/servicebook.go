package entity

// Service is one entry in the service log.
type Service struct {
	ID     int64  `json:"id"`
	Date   Date   `json:"date"`
	Topic  string `json:"topic"`
	Notes  string `json:"notes,omitempty"`
	TypeID *int64 `json:"type,omitempty"`
}

type Attendance struct {
	ID        int64 `json:"id"`
	ServiceID int64 `json:"service"`
	MemberID  int64 `json:"member"`
	Present   bool  `json:"present"`
}

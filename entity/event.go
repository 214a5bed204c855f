package entity

import (
	"fmt"

	"github.com/klauspost/lctime"
)

type EventType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Event struct {
	ID     int64  `json:"id"`
	TypeID *int64 `json:"type"`
	Date   Date   `json:"datetime"`
	Notes  string `json:"notes,omitempty"`

	MemberID   *int64 `json:"member"`
	MemberName string `json:"member_name,omitempty"`
	TypeName   string `json:"event_type,omitempty"`
}

func (e *Event) Alias() string {
	t, _ := lctime.StrftimeLoc("de_DE", "%A, %d.%m.%Y", e.Date.Time())
	if e.TypeName == "" {
		return t
	}
	return fmt.Sprintf("%s (%s)", e.TypeName, t)
}

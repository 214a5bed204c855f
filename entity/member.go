package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/klauspost/lctime"
)

type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Status struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Member struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`

	Birthday *Date `json:"birthday"`
	Joined   *Date `json:"joined"`

	Email   string `json:"email,omitempty"`
	Street  string `json:"street,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	Notes   string `json:"notes,omitempty"`

	IdentityCardNumber string `json:"identity_card_number,omitempty"`
	CanSwim            bool   `json:"can_swimm"`

	GroupID  *int64  `json:"group"`
	StatusID *int64  `json:"status"`
	Group    *Group  `json:"group_detail,omitempty"`
	Status   *Status `json:"status_detail,omitempty"`
}

func (m *Member) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", m.Name, m.Lastname))
}

// Age in full years as of today. Members without a birthday count as 0.
func (m *Member) Age() int {
	if m.Birthday == nil {
		return 0
	}

	born := m.Birthday.Time()
	today := time.Now()

	age := today.Year() - born.Year()
	if today.Month() < born.Month() ||
		(today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age
}

func (m *Member) BirthdayString() string {
	if m.Birthday == nil {
		return ""
	}
	t, _ := lctime.StrftimeLoc("de_DE", "%d. %B %Y", m.Birthday.Time())
	return t
}

// MemberStatistics is the shape of GET /members/statistics/.
type MemberStatistics struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

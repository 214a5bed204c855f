package entity

import (
	"fmt"
	"strings"
)

type Parent struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`

	Children []int64 `json:"children,omitempty"`

	Email  string `json:"email,omitempty"`
	Email2 string `json:"email2,omitempty"`

	Street  string `json:"street,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (p *Parent) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.Name, p.Lastname))
}

// WhatsAppNumber strips the characters wa.me links don't accept.
func (p *Parent) WhatsAppNumber() string {
	number := strings.ReplaceAll(p.Mobile, " ", "")
	return strings.ReplaceAll(number, "+", "")
}

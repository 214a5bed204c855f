package widget

import "github.com/jfmanager/web/entity"

// SectionVisibility captures which location sections of the stock
// transaction form are shown and which of their fields are required.
type SectionVisibility struct {
	ShowSource     bool
	ShowTarget     bool
	SourceRequired bool
	TargetRequired bool
}

// TransactionForm holds the visibility state the transaction type drives.
// An unknown type shows both sections but leaves the required flags as
// the previous type set them.
type TransactionForm struct {
	Type       entity.TransactionType
	Visibility SectionVisibility
}

func NewTransactionForm() *TransactionForm {
	f := &TransactionForm{}
	f.SetType("")
	return f
}

func (f *TransactionForm) SetType(t entity.TransactionType) {
	f.Type = t
	f.Visibility.ShowSource = false
	f.Visibility.ShowTarget = false

	switch t {
	case entity.TransactionIn, entity.TransactionReturn:
		f.Visibility.ShowTarget = true
		f.Visibility.TargetRequired = true
		f.Visibility.SourceRequired = false

	case entity.TransactionOut, entity.TransactionDiscard:
		f.Visibility.ShowSource = true
		f.Visibility.SourceRequired = true
		f.Visibility.TargetRequired = false

	case entity.TransactionMove, entity.TransactionLoan:
		f.Visibility.ShowSource = true
		f.Visibility.ShowTarget = true
		f.Visibility.SourceRequired = true
		f.Visibility.TargetRequired = true

	default:
		f.Visibility.ShowSource = true
		f.Visibility.ShowTarget = true
	}
}

// SelectItem keeps item and variant mutually exclusive, like the form's
// select handlers.
type ItemSelection struct {
	ItemID    int64
	VariantID int64
}

func (s *ItemSelection) SelectItem(id int64) {
	s.ItemID = id
	if id != 0 {
		s.VariantID = 0
	}
}

func (s *ItemSelection) SelectVariant(id int64) {
	s.VariantID = id
	if id != 0 {
		s.ItemID = 0
	}
}

func (s *ItemSelection) Empty() bool {
	return s.ItemID == 0 && s.VariantID == 0
}

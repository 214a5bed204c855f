package helpers

import "time"

const (
	MembersPageSize = 25
	SearchPageSize  = 20
)

// Debounce and search tuning shared by the live-search widgets.
const (
	SearchDebounce   = 300 * time.Millisecond
	DropdownDebounce = 250 * time.Millisecond
	MinQueryLength   = 2
)

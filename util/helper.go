package util

// SplitToColumns reflows a flat list into rows of colNum entries for
// grid-style templates.
func SplitToColumns[T any](items []T, colNum int) [][]T {

	var rows [][]T
	var i int

	for _, item := range items {
		if i == colNum {
			i = 0
		}

		if i == 0 {
			rows = append(rows, []T{item})
		} else {
			rows[len(rows)-1] = append(rows[len(rows)-1], item)
		}
		i++
	}

	return rows
}

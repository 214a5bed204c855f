package entity

// Page is the uniform pagination envelope the backend wraps every
// collection endpoint in.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

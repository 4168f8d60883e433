package model

// Source is static reference data: where an idea came from.
type Source struct {
	ID   string `json:"sourceId"`
	Name string `json:"name"`
}

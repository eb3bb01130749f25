package model

// Brand is read-only reference data owned by an external catalog.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Branch is a brand location.
type Branch struct {
	ID      int64  `json:"id"`
	BrandID int64  `json:"-"`
	Name    string `json:"name"`
}

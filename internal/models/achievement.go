package models

// Achievement is a one-time milestone. ID is the uniqueness key.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"` // bonus awarded on unlock, may be zero
	Icon        string `json:"icon"`
}

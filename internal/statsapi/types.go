package statsapi

// PlayerStatsResponse is the stats provider's export payload: the ordered
// stat column names and one row of values per player. A null value marks a
// stat the provider has no measurement for.
type PlayerStatsResponse struct {
	Success bool        `json:"success"`
	Stats   []string    `json:"stats"`
	Players []PlayerRow `json:"players"`
}

type PlayerRow struct {
	Player string     `json:"player"`
	Values []*float64 `json:"values"`
}

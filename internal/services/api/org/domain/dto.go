// Package domain holds DTOs for org http and service contracts
package domain

// TeamRow is one team of the organisation
type TeamRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NightSession bool   `json:"night_session,omitempty"`
}

// TerritoryRow is one territory of the organisation
type TerritoryRow struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types,omitempty"`
}

// Package model holds the core domain types shared across the store and the
// report analyzers.
package model

import "time"

// Game is one competitive cohort (an "industrial group") of a hospital
// simulation, as listed for the tutor.
type Game struct {
	ID                  int      `json:"id"`
	Code                string   `json:"code"`
	Name                string   `json:"name"`
	LastProcessedPeriod int      `json:"lastProcessedPeriod"`
	TeamCount           int      `json:"teamCount"`
	SimulationID        int      `json:"simulationId"`
	SimulationName      string   `json:"simulationName"`
	Professors          []string `json:"professors,omitempty"`
}

// Team is one competing unit inside a game.
type Team struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Number  int    `json:"number"`
	GroupID int    `json:"groupId"`
}

// TeamSnapshot is the pivoted view of one team's raw simulation variables for
// a single (group, period). It is assembled per request and never mutated
// after construction.
type TeamSnapshot struct {
	TeamNumber int
	TeamName   string
	Variables  map[string]float64
}

// Value returns the variable for code, or 0 when the code is absent.
//
// An absent (team, code) pair is not an error: the simulator only emits rows
// for variables it computed, and every consumer treats absence as numeric
// zero. Keep all variable reads going through here so the convention stays
// explicit.
func (s *TeamSnapshot) Value(code string) float64 {
	if s == nil {
		return 0
	}
	return s.Variables[code]
}

// StrategyWeight is one declared priority: how much a team says a strategic
// objective matters (1-5, 0 when not prioritized).
type StrategyWeight struct {
	ItemName     string `json:"itemName"`
	VariableCode string `json:"variableCode"`
	Weight       int    `json:"weight"`
}

// TeamWeights collects a team's declared strategy weights.
type TeamWeights struct {
	TeamNumber int              `json:"teamNumber"`
	TeamName   string           `json:"teamName"`
	Weights    []StrategyWeight `json:"weights"`
}

// Guide is a generated facilitation guide, cached per (group, period).
type Guide struct {
	ID        string    `json:"id"`
	GroupID   int       `json:"groupId"`
	Period    int       `json:"period"`
	Content   string    `json:"content"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

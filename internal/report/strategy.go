package report

import (
	"context"
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// StrategyObjective pairs a strategic objective with the variable that
// measures it.
type StrategyObjective struct {
	Name string
	Code string
}

// strategyObjectives lists the seven objectives teams declare weights for.
var strategyObjectives = []StrategyObjective{
	{Name: "Preço da Ação", Code: "valor_acao"},
	{Name: "Médicos Cadastrados", Code: "medicosCadastrados"},
	{Name: "Receitas Op. Líquidas", Code: "receitaLiquidaTotal"},
	{Name: "Resultado Op. Acumulado", Code: "resultadoOperacionalLiquidoAcumulado"},
	{Name: "Capital Circulante Líq.", Code: "capitalCirculanteLiq"},
	{Name: "Vidas Atendidas", Code: "vidasAtendidas"},
	{Name: "Governança Corporativa", Code: "governancaCorporativa"},
}

// AlignmentItem is one (team, objective) assessment.
type AlignmentItem struct {
	ItemName     string  `json:"itemName"`
	VariableCode string  `json:"variableCode"`
	Weight       int     `json:"weight"`
	Value        float64 `json:"value"`
	Ranking      int     `json:"ranking"`
	TotalTeams   int     `json:"totalTeams"`
	Aligned      bool    `json:"aligned"`
}

// AlignmentRow scores one team's say/do coherence: how often it ranks in the
// top half on the objectives it declared important.
type AlignmentRow struct {
	Team           string          `json:"team"`
	TeamNumber     int             `json:"teamNumber"`
	Items          []AlignmentItem `json:"items"`
	AlignmentScore float64         `json:"alignmentScore"`
}

// BuildAlignmentRows joins declared weights against achieved rankings.
//
// Per objective, teams are ranked descending by achieved value (stable: ties
// keep team-number order, rank 1 is best). A weight below 2 is never
// penalized; a weight of 2+ is aligned only when the team ranks in the top
// half. The score averages alignment over objectives with weight > 0 and is
// 0 when the team prioritized nothing.
func BuildAlignmentRows(snaps []*model.TeamSnapshot, weights map[int]*model.TeamWeights) []AlignmentRow {
	totalTeams := len(snaps)
	topHalfCutoff := int(math.Ceil(float64(totalTeams) / 2))

	// ranking per objective code: team number -> rank (1 = best).
	rankings := make(map[string]map[int]int, len(strategyObjectives))
	for _, obj := range strategyObjectives {
		ranked := make([]*model.TeamSnapshot, len(snaps))
		copy(ranked, snaps)
		code := obj.Code
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Value(code) > ranked[j].Value(code)
		})
		byTeam := make(map[int]int, len(ranked))
		for i, snap := range ranked {
			byTeam[snap.TeamNumber] = i + 1
		}
		rankings[code] = byTeam
	}

	rows := make([]AlignmentRow, 0, len(snaps))
	for _, snap := range snaps {
		items := make([]AlignmentItem, 0, len(strategyObjectives))
		alignedCount := 0
		weightedCount := 0

		for _, obj := range strategyObjectives {
			weight := declaredWeight(weights[snap.TeamNumber], obj)
			ranking := rankings[obj.Code][snap.TeamNumber]
			topHalf := ranking <= topHalfCutoff

			aligned := true
			if weight >= 2 {
				aligned = topHalf
			}

			if weight > 0 {
				weightedCount++
				if aligned {
					alignedCount++
				}
			}

			items = append(items, AlignmentItem{
				ItemName:     obj.Name,
				VariableCode: obj.Code,
				Weight:       weight,
				Value:        snap.Value(obj.Code),
				Ranking:      ranking,
				TotalTeams:   totalTeams,
				Aligned:      aligned,
			})
		}

		score := 0.0
		if weightedCount > 0 {
			score = float64(alignedCount) / float64(weightedCount) * 100
		}

		rows = append(rows, AlignmentRow{
			Team:           snap.TeamName,
			TeamNumber:     snap.TeamNumber,
			Items:          items,
			AlignmentScore: score,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AlignmentScore > rows[j].AlignmentScore })
	return rows
}

// declaredWeight finds a team's weight for an objective, matching by variable
// code first and item name second. Absent declarations read as weight 0.
func declaredWeight(tw *model.TeamWeights, obj StrategyObjective) int {
	if tw == nil {
		return 0
	}
	for _, w := range tw.Weights {
		if w.VariableCode == obj.Code || w.ItemName == obj.Name {
			return w.Weight
		}
	}
	return 0
}

// StrategyAlignment derives the say/do coherence report. Weights and results
// come from two independent store reads.
func (a *Analyzer) StrategyAlignment(ctx context.Context, groupID, period int) ([]AlignmentRow, error) {
	weights, err := a.store.StrategyWeights(ctx, groupID)
	if err != nil {
		return nil, eris.Wrap(err, "report: strategy weights")
	}
	snaps, err := a.store.Variables(ctx, groupID, period, strategyResultCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: strategy variables")
	}
	return BuildAlignmentRows(sortedSnapshots(snaps), weights), nil
}

package report

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// GovernanceBadge is the display tier derived from the composite score.
type GovernanceBadge string

const (
	GovernanceStrong   GovernanceBadge = "strong"
	GovernanceMedium   GovernanceBadge = "medium"
	GovernanceCritical GovernanceBadge = "critical"
)

// GovernanceRow is one team's corporate governance score with its
// sub-components. The composite score is computed by the simulator; this
// analyzer only attaches the badge and orders the rows.
type GovernanceRow struct {
	Team            string          `json:"team"`
	TeamNumber      int             `json:"teamNumber"`
	Score           float64         `json:"score"`
	RevolvingCredit float64         `json:"revolvingCredit"`
	Layoffs         float64         `json:"layoffs"`
	OvertimeUse     float64         `json:"overtimeUse"`
	Certifications  float64         `json:"certifications"`
	Transparency    float64         `json:"transparency"`
	InfectionGrade  float64         `json:"infectionGrade"`
	Badge           GovernanceBadge `json:"badge"`
}

// GovernanceBadgeFor maps a 0-100 composite score to its display tier.
func GovernanceBadgeFor(score float64) GovernanceBadge {
	switch {
	case score >= 70:
		return GovernanceStrong
	case score >= 40:
		return GovernanceMedium
	default:
		return GovernanceCritical
	}
}

// BuildGovernanceRows passes the composite score and sub-components through,
// sorted descending by score.
func BuildGovernanceRows(snaps []*model.TeamSnapshot) []GovernanceRow {
	rows := make([]GovernanceRow, 0, len(snaps))
	for _, snap := range snaps {
		score := snap.Value("governancaCorporativa")
		rows = append(rows, GovernanceRow{
			Team:            snap.TeamName,
			TeamNumber:      snap.TeamNumber,
			Score:           score,
			RevolvingCredit: snap.Value("governancaCorporativa_creditoRotativo"),
			Layoffs:         snap.Value("governancaCorporativa_totalDispensa"),
			OvertimeUse:     snap.Value("governancaCorporativa_usoMaoOBraExtra"),
			Certifications:  snap.Value("governancaCorporativa_numeroCertificacoes"),
			Transparency:    snap.Value("governancaCorporativa_liberouRelatoriosFinanceirosHospitais"),
			InfectionGrade:  snap.Value("governancaCorporativa_atratividadeParcial_taxaInfeccao"),
			Badge:           GovernanceBadgeFor(score),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	return rows
}

// Governance derives the governance score table.
func (a *Analyzer) Governance(ctx context.Context, groupID, period int) ([]GovernanceRow, error) {
	snaps, err := a.store.Variables(ctx, groupID, period, governanceCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: governance variables")
	}
	return BuildGovernanceRows(sortedSnapshots(snaps)), nil
}

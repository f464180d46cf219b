package report

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// ProfitabilityRow is one (team, service line) margin breakdown. All values
// are pre-computed by the simulator; this analyzer only selects, groups and
// orders them.
type ProfitabilityRow struct {
	Team               string  `json:"team"`
	TeamNumber         int     `json:"teamNumber"`
	Service            string  `json:"service"`
	TotalRevenue       float64 `json:"totalRevenue"`
	Disallowances      float64 `json:"disallowances"`
	Defaults           float64 `json:"defaults"`
	NetRevenue         float64 `json:"netRevenue"`
	InputCosts         float64 `json:"inputCosts"`
	LaborCosts         float64 `json:"laborCosts"`
	ContributionMargin float64 `json:"contributionMargin"`
	MarginPercent      float64 `json:"marginPercent"`
}

// ProfitabilityReport holds the rows ordered best margin first, plus
// takeaways naming the extremes and any loss-making teams.
type ProfitabilityReport struct {
	Rows      []ProfitabilityRow `json:"rows"`
	Takeaways []string           `json:"takeaways"`
}

// BuildProfitabilityReport selects the margin variables per team and service
// and sorts descending by margin percent (stable; input order is team
// number, then service order).
func BuildProfitabilityReport(snaps []*model.TeamSnapshot) ProfitabilityReport {
	var rows []ProfitabilityRow
	for _, snap := range snaps {
		for _, svc := range ServiceLines {
			rows = append(rows, ProfitabilityRow{
				Team:               snap.TeamName,
				TeamNumber:         snap.TeamNumber,
				Service:            svc.Label,
				TotalRevenue:       snap.Value("receita_total_" + svc.Suffix),
				Disallowances:      snap.Value("glosa_" + svc.Suffix),
				Defaults:           snap.Value("inadimplenciaParticulares" + svc.Suffix),
				NetRevenue:         snap.Value("receita_liquida_" + svc.Suffix),
				InputCosts:         snap.Value("custo_insumos_" + svc.Suffix),
				LaborCosts:         snap.Value("custo_pessoal_" + svc.Suffix),
				ContributionMargin: snap.Value("margem_contribuicao_" + svc.Suffix),
				MarginPercent:      snap.Value("percentual_total_margem_contribuicao_" + svc.Suffix),
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].MarginPercent > rows[j].MarginPercent })

	return ProfitabilityReport{Rows: rows, Takeaways: profitabilityTakeaways(rows)}
}

func profitabilityTakeaways(rows []ProfitabilityRow) []string {
	if len(rows) == 0 {
		return nil
	}

	best := rows[0]
	worst := rows[len(rows)-1]

	takeaways := []string{
		ptBR.Sprintf("Melhor margem de contribuição: %s em %s (%.1f%%).",
			best.Team, best.Service, best.MarginPercent),
		ptBR.Sprintf("Pior margem de contribuição: %s em %s (%.1f%%).",
			worst.Team, worst.Service, worst.MarginPercent),
	}

	var losing []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if r.MarginPercent < 0 && !seen[r.Team] {
			losing = append(losing, r.Team)
			seen[r.Team] = true
		}
	}
	if len(losing) > 0 {
		verb := "opera"
		if len(losing) > 1 {
			verb = "operam"
		}
		takeaways = append(takeaways, ptBR.Sprintf(
			"%s %s com prejuízo em pelo menos uma linha de serviço.", joinNames(losing), verb))
	}

	return takeaways
}

// Profitability derives the margin report for all teams and service lines.
func (a *Analyzer) Profitability(ctx context.Context, groupID, period int) (ProfitabilityReport, error) {
	snaps, err := a.store.Variables(ctx, groupID, period, profitabilityCodes)
	if err != nil {
		return ProfitabilityReport{}, eris.Wrap(err, "report: profitability variables")
	}
	return BuildProfitabilityReport(sortedSnapshots(snaps)), nil
}

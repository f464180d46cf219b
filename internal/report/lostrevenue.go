package report

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// LossDominance labels where a team is leaving money on the table.
type LossDominance string

const (
	LossOverload LossDominance = "overload"
	LossIdleness LossDominance = "idleness"
	LossBalanced LossDominance = "balanced"
)

// dominanceFactor is how much one loss side must exceed the other before the
// picture stops being called balanced.
const dominanceFactor = 1.5

// ServiceLoss quantifies lost demand and idle capacity for one service line.
type ServiceLoss struct {
	Service         string        `json:"service"`
	LostVolume      float64       `json:"lostVolume"`
	RevenuePerUnit  float64       `json:"revenuePerUnit"`
	LostRevenue     float64       `json:"lostRevenue"`
	Idleness        float64       `json:"idleness"`
	IdlenessRevenue float64       `json:"idlenessRevenue"`
	Dominant        LossDominance `json:"dominantType"`
}

// LostRevenueRow aggregates a team's revenue left unrealized across services.
type LostRevenueRow struct {
	Team             string        `json:"team"`
	TeamNumber       int           `json:"teamNumber"`
	Services         []ServiceLoss `json:"services"`
	TotalLostRevenue float64       `json:"totalLostRevenue"`
	Dominant         LossDominance `json:"dominantType"`
	PctRevenueLost   float64       `json:"pctRevenueLost"`
}

// ClassifyDominance compares lost-demand revenue against idle-capacity cost.
func ClassifyDominance(lostRevenue, idlenessRevenue float64) LossDominance {
	switch {
	case lostRevenue > idlenessRevenue*dominanceFactor:
		return LossOverload
	case idlenessRevenue > lostRevenue*dominanceFactor:
		return LossIdleness
	default:
		return LossBalanced
	}
}

// BuildLostRevenueRows estimates revenue lost to unmet demand and contribution
// margin burned on idle capacity. Inpatient care reports no idleness variable,
// so only its lost demand counts.
func BuildLostRevenueRows(snapshots map[int]*model.TeamSnapshot) []LostRevenueRow {
	teams := sortedSnapshots(snapshots)
	rows := make([]LostRevenueRow, 0, len(teams))
	for _, team := range teams {
		services := make([]ServiceLoss, 0, len(ServiceLines))
		totalLost := 0.0
		totalNetRevenue := 0.0

		for _, svc := range ServiceLines {
			attended := team.Value("atendimentos_" + svc.Suffix)
			netRevenue := team.Value("receita_liquida_" + svc.Suffix)
			totalNetRevenue += netRevenue

			revenuePerUnit := 0.0
			marginPerUnit := 0.0
			if attended > 0 {
				revenuePerUnit = netRevenue / attended
				marginPerUnit = team.Value("margem_contribuicao_"+svc.Suffix) / attended
			}

			lostVolume := team.Value("atendimentosPerdidos" + svc.Suffix)
			lostRevenue := lostVolume * revenuePerUnit

			idleness := 0.0
			if svc.HasIdleness {
				idleness = team.Value("ociosidade_" + svc.Suffix)
			}
			idlenessRevenue := idleness * marginPerUnit

			services = append(services, ServiceLoss{
				Service:         svc.Label,
				LostVolume:      lostVolume,
				RevenuePerUnit:  revenuePerUnit,
				LostRevenue:     lostRevenue,
				Idleness:        idleness,
				IdlenessRevenue: idlenessRevenue,
				Dominant:        ClassifyDominance(lostRevenue, idlenessRevenue),
			})
			totalLost += lostRevenue + idlenessRevenue
		}

		overloadTotal := 0.0
		idlenessTotal := 0.0
		for _, svc := range services {
			overloadTotal += svc.LostRevenue
			idlenessTotal += svc.IdlenessRevenue
		}

		pctRevenueLost := 0.0
		if totalNetRevenue > 0 {
			pctRevenueLost = totalLost / totalNetRevenue * 100
		}

		rows = append(rows, LostRevenueRow{
			Team:             team.TeamName,
			TeamNumber:       team.TeamNumber,
			Services:         services,
			TotalLostRevenue: totalLost,
			Dominant:         ClassifyDominance(overloadTotal, idlenessTotal),
			PctRevenueLost:   pctRevenueLost,
		})
	}
	return rows
}

// LostRevenue derives the unrealized-revenue report for a period.
func (a *Analyzer) LostRevenue(ctx context.Context, groupID, period int) ([]LostRevenueRow, error) {
	snapshots, err := a.store.Variables(ctx, groupID, period, lostRevenueCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: lost revenue variables")
	}
	return BuildLostRevenueRows(snapshots), nil
}

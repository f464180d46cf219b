package report

import (
	"context"
	"math"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// EfficiencyStatus classifies a team's capacity position for one service.
type EfficiencyStatus string

const (
	StatusOK           EfficiencyStatus = "ok"
	StatusOverload     EfficiencyStatus = "overload"
	StatusOvercapacity EfficiencyStatus = "overcapacity"
)

// idleThreshold is the utilization percentage below which a service counts
// as idle (overcapacity).
const idleThreshold = 70.0

// ServiceEfficiency is one team's capacity picture for one service line.
type ServiceEfficiency struct {
	Team            string           `json:"team"`
	TeamNumber      int              `json:"teamNumber"`
	Capacity        int              `json:"capacity"`
	VolumeServed    float64          `json:"volumeServed"`
	UtilizationRate float64          `json:"utilizationRate"`
	UnmetDemand     float64          `json:"unmetDemand"`
	Status          EfficiencyStatus `json:"status"`
}

// ServiceEfficiencyReport groups the per-team rows of one service line with
// auto-generated takeaways.
type ServiceEfficiencyReport struct {
	Service    string              `json:"service"`
	ServiceKey string              `json:"serviceKey"`
	Teams      []ServiceEfficiency `json:"teams"`
	Takeaways  []string            `json:"takeaways"`
}

// ComputeServiceEfficiency classifies one team on one service line.
//
// Overload strictly dominates the idle threshold: any lost demand marks the
// team overloaded regardless of utilization. Zero capacity yields zero
// utilization, never NaN.
func ComputeServiceEfficiency(teamName string, teamNumber int, capacity, attended, lost float64) ServiceEfficiency {
	utilization := 0.0
	if capacity > 0 {
		utilization = attended / capacity * 100
	}

	status := StatusOK
	if lost > 0 {
		status = StatusOverload
	} else if utilization < idleThreshold {
		status = StatusOvercapacity
	}

	return ServiceEfficiency{
		Team:            teamName,
		TeamNumber:      teamNumber,
		Capacity:        int(math.Round(capacity)),
		VolumeServed:    attended,
		UtilizationRate: math.Round(utilization*10) / 10,
		UnmetDemand:     lost,
		Status:          status,
	}
}

// BuildEfficiencyReport derives one service line's report from the team
// snapshots. Inpatient has no explicit limit variable, so its capacity proxy
// is current demand.
func BuildEfficiencyReport(svc ServiceLine, snaps []*model.TeamSnapshot) ServiceEfficiencyReport {
	teams := make([]ServiceEfficiency, 0, len(snaps))
	for _, snap := range snaps {
		attended := snap.Value("atendimentos_" + svc.Suffix)
		demand := snap.Value("demandaFinal_" + svc.Suffix)
		lost := snap.Value("atendimentosPerdidos" + svc.Suffix)

		capacity := demand
		if svc.LimitCode != "" {
			if limit := snap.Value(svc.LimitCode); limit > 0 {
				capacity = limit
			}
		}

		teams = append(teams, ComputeServiceEfficiency(snap.TeamName, snap.TeamNumber, capacity, attended, lost))
	}

	return ServiceEfficiencyReport{
		Service:    svc.Label,
		ServiceKey: svc.Key,
		Teams:      teams,
		Takeaways:  efficiencyTakeaways(svc.Label, teams),
	}
}

func efficiencyTakeaways(label string, teams []ServiceEfficiency) []string {
	var overloaded, idle []string
	totalLost := 0.0
	for _, t := range teams {
		switch t.Status {
		case StatusOverload:
			overloaded = append(overloaded, t.Team)
			totalLost += t.UnmetDemand
		case StatusOvercapacity:
			idle = append(idle, t.Team)
		}
	}

	var takeaways []string
	if len(overloaded) > 0 {
		verb := "está"
		if len(overloaded) > 1 {
			verb = "estão"
		}
		takeaways = append(takeaways, ptBR.Sprintf(
			"%s %s com sobrecarga em %s — %d atendimentos perdidos no trimestre.",
			joinNames(overloaded), verb, label, int64(totalLost)))
	}
	if len(idle) > 0 {
		verb := "opera"
		if len(idle) > 1 {
			verb = "operam"
		}
		takeaways = append(takeaways, ptBR.Sprintf(
			"%s %s com alta ociosidade em %s — capacidade subutilizada gera custo fixo sem receita correspondente.",
			joinNames(idle), verb, label))
	}
	if len(takeaways) == 0 {
		takeaways = append(takeaways, ptBR.Sprintf(
			"Todas as equipes operam dentro da faixa adequada em %s.", label))
	}
	return takeaways
}

// Efficiency derives the capacity/utilization report for every service line.
func (a *Analyzer) Efficiency(ctx context.Context, groupID, period int) (map[string]ServiceEfficiencyReport, error) {
	snaps, err := a.store.Variables(ctx, groupID, period, efficiencyCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: efficiency variables")
	}

	sorted := sortedSnapshots(snaps)
	out := make(map[string]ServiceEfficiencyReport, len(ServiceLines))
	for _, svc := range ServiceLines {
		out[svc.Key] = BuildEfficiencyReport(svc, sorted)
	}
	return out, nil
}

package report

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
)

// TimeseriesPoint holds one period's value per team, keyed by team name.
type TimeseriesPoint struct {
	Period int                `json:"period"`
	Values map[string]float64 `json:"values"`
}

// TimeseriesMetric is the evolution of one metric across all played periods.
type TimeseriesMetric struct {
	Key    string            `json:"key"`
	Label  string            `json:"label"`
	Points []TimeseriesPoint `json:"data"`
}

// TimeseriesDataset groups the trend metrics for a game, one series per
// metric with every team's value at every period from 1 to the last
// processed one.
type TimeseriesDataset struct {
	Teams   []string           `json:"teams"`
	Metrics []TimeseriesMetric `json:"metrics"`
}

type timeseriesMetricDef struct {
	key      string
	label    string
	code     string
	computed bool
}

var timeseriesMetrics = []timeseriesMetricDef{
	{key: "sharePrice", label: "Valor da Ação", code: "valor_acao"},
	{key: "netRevenue", label: "Receita Líquida", code: "receitaLiquidaTotal"},
	{key: "operatingMargin", label: "Margem Operacional (%)", computed: true},
	{key: "governance", label: "Governança Corporativa", code: "governancaCorporativa"},
}

// Timeseries derives trend series for share price, net revenue, operating
// margin and governance over periods 1..maxPeriod. Teams missing from a
// period read as zero so the series stay rectangular.
func (a *Analyzer) Timeseries(ctx context.Context, groupID, maxPeriod int) (*TimeseriesDataset, error) {
	byPeriod, err := a.store.VariablesAllPeriods(ctx, groupID, maxPeriod, timeseriesCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: timeseries variables")
	}

	// Team names may only appear in some periods; take the first seen.
	names := make(map[int]string)
	for _, snapshots := range byPeriod {
		for num, team := range snapshots {
			if _, ok := names[num]; !ok {
				names[num] = team.TeamName
			}
		}
	}
	numbers := make([]int, 0, len(names))
	for n := range names {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	teams := make([]string, 0, len(numbers))
	for _, n := range numbers {
		teams = append(teams, names[n])
	}

	metrics := make([]TimeseriesMetric, 0, len(timeseriesMetrics))
	for _, def := range timeseriesMetrics {
		points := make([]TimeseriesPoint, 0, maxPeriod)
		for p := 1; p <= maxPeriod; p++ {
			values := make(map[string]float64, len(numbers))
			snapshots := byPeriod[p]
			for _, n := range numbers {
				team := snapshots[n]
				if def.computed {
					values[names[n]] = ratioPercent(team.Value("resultadoOperacionalLiquido"), team.Value("receitaLiquidaTotal"))
				} else {
					values[names[n]] = team.Value(def.code)
				}
			}
			points = append(points, TimeseriesPoint{Period: p, Values: values})
		}
		metrics = append(metrics, TimeseriesMetric{Key: def.key, Label: def.label, Points: points})
	}

	return &TimeseriesDataset{Teams: teams, Metrics: metrics}, nil
}

package report

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// BenchmarkRow is one team's cross-team comparison line. OverallRanking is
// supplied by the simulator; only the margin ratios are derived here.
type BenchmarkRow struct {
	Team               string  `json:"team"`
	TeamNumber         int     `json:"teamNumber"`
	SharePrice         float64 `json:"sharePrice"`
	NetRevenue         float64 `json:"netRevenue"`
	NetOperatingIncome float64 `json:"netOperatingIncome"`
	OperatingMargin    float64 `json:"operatingMargin"`
	EBITDA             float64 `json:"ebitda"`
	EBITDAMargin       float64 `json:"ebitdaMargin"`
	PatientsAttended   float64 `json:"patientsAttended"`
	RegisteredDoctors  float64 `json:"registeredDoctors"`
	NWC                float64 `json:"nwc"`
	OverallRanking     int     `json:"overallRanking"`
}

// BuildBenchmarkRows derives margins and sorts ascending by the supplied
// overall ranking (rank 1 first). The sort is stable: ties keep team-number
// order.
func BuildBenchmarkRows(snaps []*model.TeamSnapshot) []BenchmarkRow {
	rows := make([]BenchmarkRow, 0, len(snaps))
	for _, snap := range snaps {
		netRevenue := snap.Value("receitaLiquidaTotal")
		operating := snap.Value("resultadoOperacionalLiquido")
		ebitda := snap.Value("resultadoBruto")

		rows = append(rows, BenchmarkRow{
			Team:               snap.TeamName,
			TeamNumber:         snap.TeamNumber,
			SharePrice:         snap.Value("valor_acao"),
			NetRevenue:         netRevenue,
			NetOperatingIncome: operating,
			OperatingMargin:    ratioPercent(operating, netRevenue),
			EBITDA:             ebitda,
			EBITDAMargin:       ratioPercent(ebitda, netRevenue),
			PatientsAttended:   snap.Value("vidasAtendidas"),
			RegisteredDoctors:  snap.Value("medicosCadastrados"),
			NWC:                snap.Value("capitalCirculanteLiq"),
			OverallRanking:     int(snap.Value("colocacaoRankingPeriodo")),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].OverallRanking < rows[j].OverallRanking })
	return rows
}

// ratioPercent computes num/den*100, guarding the denominator.
func ratioPercent(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * 100
}

// Benchmarking derives the ranked comparison table.
func (a *Analyzer) Benchmarking(ctx context.Context, groupID, period int) ([]BenchmarkRow, error) {
	snaps, err := a.store.Variables(ctx, groupID, period, benchmarkingCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: benchmarking variables")
	}
	return BuildBenchmarkRows(sortedSnapshots(snaps)), nil
}

package report

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// RiskStatus is the three-state financial risk classification.
type RiskStatus string

const (
	RiskHealthy   RiskStatus = "healthy"
	RiskAttention RiskStatus = "attention"
	RiskCritical  RiskStatus = "critical"
)

// RiskRow is one team's liquidity and leverage picture.
type RiskRow struct {
	Team                string     `json:"team"`
	TeamNumber          int        `json:"teamNumber"`
	EndingCash          float64    `json:"endingCash"`
	OpeningCash         float64    `json:"openingCash"`
	NetWorkingCapital   float64    `json:"netWorkingCapital"`
	Equity              float64    `json:"equity"`
	TotalAssets         float64    `json:"totalAssets"`
	TotalLiabilities    float64    `json:"totalLiabilities"`
	RevolvingCredit     float64    `json:"revolvingCredit"`
	RevolvingCreditUsed float64    `json:"revolvingCreditUsed"`
	RevolvingCreditRate float64    `json:"revolvingCreditRate"`
	RevolvingCreditCost float64    `json:"revolvingCreditCost"`
	LoanExpense         float64    `json:"loanExpense"`
	LoanInterestRate    float64    `json:"loanInterestRate"`
	EmergencyPlan       float64    `json:"emergencyPlan"`
	NetRevenue          float64    `json:"netRevenue"`
	Leverage            float64    `json:"leverage"`
	CashCoverage        float64    `json:"cashCoverage"`
	CashVariation       float64    `json:"cashVariation"`
	RiskStatus          RiskStatus `json:"riskStatus"`
}

// ClassifyRisk applies the three predicates in strict priority order: first
// match wins, critical dominates attention dominates healthy.
func ClassifyRisk(netWorkingCapital, emergencyPlan, revolvingCredit float64) RiskStatus {
	switch {
	case netWorkingCapital < 0 || emergencyPlan > 0:
		return RiskCritical
	case revolvingCredit > 0:
		return RiskAttention
	default:
		return RiskHealthy
	}
}

// BuildRiskRows derives the liquidity ratios and risk state per team.
func BuildRiskRows(snaps []*model.TeamSnapshot) []RiskRow {
	rows := make([]RiskRow, 0, len(snaps))
	for _, snap := range snaps {
		endingCash := snap.Value("saldoFinal")
		openingCash := snap.Value("saldoInicialTrimestre")
		nwc := snap.Value("capitalCirculanteLiq")
		equity := snap.Value("patrimonioLiquido")
		liabilities := snap.Value("totalPassivo")
		revolving := snap.Value("creditoRotativo")
		emergency := snap.Value("planoEmergencial")
		netRevenue := snap.Value("receitaLiquidaTotal")

		// Negative equity still yields a meaningful (negative) leverage;
		// only an exact zero is guarded.
		leverage := 0.0
		if equity != 0 {
			leverage = liabilities / equity
		}

		rows = append(rows, RiskRow{
			Team:                snap.TeamName,
			TeamNumber:          snap.TeamNumber,
			EndingCash:          endingCash,
			OpeningCash:         openingCash,
			NetWorkingCapital:   nwc,
			Equity:              equity,
			TotalAssets:         snap.Value("totalAtivo"),
			TotalLiabilities:    liabilities,
			RevolvingCredit:     revolving,
			RevolvingCreditUsed: snap.Value("utilizacaoCreditoRotativo"),
			RevolvingCreditRate: snap.Value("hospitalPercentualCreditoRotativo"),
			RevolvingCreditCost: snap.Value("despesaCreditoRotativo"),
			LoanExpense:         snap.Value("despesa_emprestimo"),
			LoanInterestRate:    snap.Value("taxa_juros_emprestimo"),
			EmergencyPlan:       emergency,
			NetRevenue:          netRevenue,
			Leverage:            leverage,
			CashCoverage:        ratioPercent(endingCash, netRevenue),
			CashVariation:       endingCash - openingCash,
			RiskStatus:          ClassifyRisk(nwc, emergency, revolving),
		})
	}
	return rows
}

// FinancialRisk derives the per-team risk classification.
func (a *Analyzer) FinancialRisk(ctx context.Context, groupID, period int) ([]RiskRow, error) {
	snaps, err := a.store.Variables(ctx, groupID, period, financialRiskCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: financial risk variables")
	}
	return BuildRiskRows(sortedSnapshots(snaps)), nil
}

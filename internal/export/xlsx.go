// Package export writes a period's reports to an XLSX workbook so tutors can
// hand teams a spreadsheet instead of screenshots.
package export

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/marispinelli3322/tutor-copilot/internal/report"
)

// Exporter renders analyzer output to spreadsheets.
type Exporter struct {
	analyzer *report.Analyzer
}

// New creates an Exporter.
func New(analyzer *report.Analyzer) *Exporter {
	return &Exporter{analyzer: analyzer}
}

// Export writes one workbook with a sheet per tabular report module for the
// given period.
func (e *Exporter) Export(ctx context.Context, groupID, period int, path string) error {
	f := xlsx.NewFile()

	if err := e.addBenchmarkSheet(ctx, f, groupID, period); err != nil {
		return err
	}
	if err := e.addEfficiencySheet(ctx, f, groupID, period); err != nil {
		return err
	}
	if err := e.addProfitabilitySheet(ctx, f, groupID, period); err != nil {
		return err
	}
	if err := e.addRiskSheet(ctx, f, groupID, period); err != nil {
		return err
	}
	if err := e.addGovernanceSheet(ctx, f, groupID, period); err != nil {
		return err
	}
	if err := e.addStrategySheet(ctx, f, groupID, period); err != nil {
		return err
	}
	if err := e.addQualitySheet(ctx, f, groupID, period); err != nil {
		return err
	}
	if err := e.addLostRevenueSheet(ctx, f, groupID, period); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}

	zap.L().Info("workbook exported",
		zap.Int("group_id", groupID),
		zap.Int("period", period),
		zap.String("path", path),
	)
	return nil
}

func addHeader(sheet *xlsx.Sheet, cols ...string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().SetString(c)
	}
}

func (e *Exporter) addBenchmarkSheet(ctx context.Context, f *xlsx.File, groupID, period int) error {
	rows, err := e.analyzer.Benchmarking(ctx, groupID, period)
	if err != nil {
		return err
	}

	sheet, err := f.AddSheet("Benchmarking")
	if err != nil {
		return eris.Wrap(err, "export: add benchmarking sheet")
	}
	addHeader(sheet, "Ranking", "Equipe", "Valor da Ação", "Receita Líquida", "Resultado Op.", "Margem Op. %", "EBITDA", "Margem EBITDA %", "Vidas", "Médicos", "CCL")
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt(r.OverallRanking)
		row.AddCell().SetString(r.Team)
		row.AddCell().SetFloat(r.SharePrice)
		row.AddCell().SetFloat(r.NetRevenue)
		row.AddCell().SetFloat(r.NetOperatingIncome)
		row.AddCell().SetFloat(r.OperatingMargin)
		row.AddCell().SetFloat(r.EBITDA)
		row.AddCell().SetFloat(r.EBITDAMargin)
		row.AddCell().SetFloat(r.PatientsAttended)
		row.AddCell().SetFloat(r.RegisteredDoctors)
		row.AddCell().SetFloat(r.NWC)
	}
	return nil
}

func (e *Exporter) addEfficiencySheet(ctx context.Context, f *xlsx.File, groupID, period int) error {
	reports, err := e.analyzer.Efficiency(ctx, groupID, period)
	if err != nil {
		return err
	}

	sheet, err := f.AddSheet("Eficiência")
	if err != nil {
		return eris.Wrap(err, "export: add efficiency sheet")
	}
	addHeader(sheet, "Serviço", "Equipe", "Capacidade", "Atendidos", "Utilização %", "Demanda Perdida", "Status")
	for _, svc := range report.ServiceLines {
		rep := reports[svc.Key]
		for _, t := range rep.Teams {
			row := sheet.AddRow()
			row.AddCell().SetString(rep.Service)
			row.AddCell().SetString(t.Team)
			row.AddCell().SetInt(t.Capacity)
			row.AddCell().SetFloat(t.VolumeServed)
			row.AddCell().SetFloat(t.UtilizationRate)
			row.AddCell().SetFloat(t.UnmetDemand)
			row.AddCell().SetString(string(t.Status))
		}
	}
	return nil
}

func (e *Exporter) addProfitabilitySheet(ctx context.Context, f *xlsx.File, groupID, period int) error {
	rep, err := e.analyzer.Profitability(ctx, groupID, period)
	if err != nil {
		return err
	}

	sheet, err := f.AddSheet("Lucratividade")
	if err != nil {
		return eris.Wrap(err, "export: add profitability sheet")
	}
	addHeader(sheet, "Equipe", "Serviço", "Receita Bruta", "Glosa", "Inadimplência", "Receita Líquida", "Insumos", "Pessoal", "Margem Contribuição", "Margem %")
	for _, r := range rep.Rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Team)
		row.AddCell().SetString(r.Service)
		row.AddCell().SetFloat(r.TotalRevenue)
		row.AddCell().SetFloat(r.Disallowances)
		row.AddCell().SetFloat(r.Defaults)
		row.AddCell().SetFloat(r.NetRevenue)
		row.AddCell().SetFloat(r.InputCosts)
		row.AddCell().SetFloat(r.LaborCosts)
		row.AddCell().SetFloat(r.ContributionMargin)
		row.AddCell().SetFloat(r.MarginPercent)
	}
	return nil
}

func (e *Exporter) addRiskSheet(ctx context.Context, f *xlsx.File, groupID, period int) error {
	rows, err := e.analyzer.FinancialRisk(ctx, groupID, period)
	if err != nil {
		return err
	}

	sheet, err := f.AddSheet("Risco Financeiro")
	if err != nil {
		return eris.Wrap(err, "export: add risk sheet")
	}
	addHeader(sheet, "Equipe", "Caixa Final", "Variação Caixa", "CCL", "Patrimônio Líquido", "Passivo Total", "Alavancagem", "Cobertura Caixa %", "Crédito Rotativo", "Plano Emergencial", "Status")
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Team)
		row.AddCell().SetFloat(r.EndingCash)
		row.AddCell().SetFloat(r.CashVariation)
		row.AddCell().SetFloat(r.NetWorkingCapital)
		row.AddCell().SetFloat(r.Equity)
		row.AddCell().SetFloat(r.TotalLiabilities)
		row.AddCell().SetFloat(r.Leverage)
		row.AddCell().SetFloat(r.CashCoverage)
		row.AddCell().SetFloat(r.RevolvingCredit)
		row.AddCell().SetFloat(r.EmergencyPlan)
		row.AddCell().SetString(string(r.RiskStatus))
	}
	return nil
}

func (e *Exporter) addGovernanceSheet(ctx context.Context, f *xlsx.File, groupID, period int) error {
	rows, err := e.analyzer.Governance(ctx, groupID, period)
	if err != nil {
		return err
	}

	sheet, err := f.AddSheet("Governança")
	if err != nil {
		return eris.Wrap(err, "export: add governance sheet")
	}
	addHeader(sheet, "Equipe", "Score", "Crédito Rotativo", "Dispensas", "Hora Extra", "Certificações", "Transparência", "Infecção", "Selo")
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Team)
		row.AddCell().SetFloat(r.Score)
		row.AddCell().SetFloat(r.RevolvingCredit)
		row.AddCell().SetFloat(r.Layoffs)
		row.AddCell().SetFloat(r.OvertimeUse)
		row.AddCell().SetFloat(r.Certifications)
		row.AddCell().SetFloat(r.Transparency)
		row.AddCell().SetFloat(r.InfectionGrade)
		row.AddCell().SetString(string(r.Badge))
	}
	return nil
}

func (e *Exporter) addStrategySheet(ctx context.Context, f *xlsx.File, groupID, period int) error {
	rows, err := e.analyzer.StrategyAlignment(ctx, groupID, period)
	if err != nil {
		return err
	}

	sheet, err := f.AddSheet("Estratégia")
	if err != nil {
		return eris.Wrap(err, "export: add strategy sheet")
	}
	addHeader(sheet, "Equipe", "Objetivo", "Peso", "Valor", "Ranking", "Alinhado", "Score %")
	for _, r := range rows {
		for _, it := range r.Items {
			row := sheet.AddRow()
			row.AddCell().SetString(r.Team)
			row.AddCell().SetString(it.ItemName)
			row.AddCell().SetInt(it.Weight)
			row.AddCell().SetFloat(it.Value)
			row.AddCell().SetInt(it.Ranking)
			row.AddCell().SetBool(it.Aligned)
			row.AddCell().SetFloat(r.AlignmentScore)
		}
	}
	return nil
}

func (e *Exporter) addQualitySheet(ctx context.Context, f *xlsx.File, groupID, period int) error {
	rows, err := e.analyzer.Quality(ctx, groupID, period)
	if err != nil {
		return err
	}

	sheet, err := f.AddSheet("Qualidade")
	if err != nil {
		return eris.Wrap(err, "export: add quality sheet")
	}
	addHeader(sheet, "Equipe", "Certificações", "Taxa Infecção", "Multa Anvisa", "Alertas Anvisa", "Fiscalizações", "Status")
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Team)
		row.AddCell().SetFloat(r.Certifications)
		row.AddCell().SetFloat(r.InfectionRate)
		row.AddCell().SetFloat(r.AnvisaFine)
		row.AddCell().SetFloat(r.AnvisaAlerts)
		row.AddCell().SetFloat(r.AnvisaInspections)
		row.AddCell().SetString(string(r.Status))
	}
	return nil
}

func (e *Exporter) addLostRevenueSheet(ctx context.Context, f *xlsx.File, groupID, period int) error {
	rows, err := e.analyzer.LostRevenue(ctx, groupID, period)
	if err != nil {
		return err
	}

	sheet, err := f.AddSheet("Receita Perdida")
	if err != nil {
		return eris.Wrap(err, "export: add lost revenue sheet")
	}
	addHeader(sheet, "Equipe", "Serviço", "Volume Perdido", "Receita/Unidade", "Receita Perdida", "Ociosidade", "Custo Ociosidade", "Dominante")
	for _, r := range rows {
		for _, svc := range r.Services {
			row := sheet.AddRow()
			row.AddCell().SetString(r.Team)
			row.AddCell().SetString(svc.Service)
			row.AddCell().SetFloat(svc.LostVolume)
			row.AddCell().SetFloat(svc.RevenuePerUnit)
			row.AddCell().SetFloat(svc.LostRevenue)
			row.AddCell().SetFloat(svc.Idleness)
			row.AddCell().SetFloat(svc.IdlenessRevenue)
			row.AddCell().SetString(string(svc.Dominant))
		}
	}
	return nil
}

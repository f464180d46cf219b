package report

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// QualityStatus summarizes a team's regulatory standing.
type QualityStatus string

const (
	QualityExcellent QualityStatus = "excellent"
	QualityAdequate  QualityStatus = "adequate"
	QualityCritical  QualityStatus = "critical"
)

// QualityRow is one team's quality and regulatory compliance snapshot.
type QualityRow struct {
	Team                      string        `json:"team"`
	TeamNumber                int           `json:"teamNumber"`
	InfectionRate             float64       `json:"infectionRate"`
	InfectionAttractiveness   float64       `json:"infectionAttractiveness"`
	Certifications            float64       `json:"certifications"`
	CertAttractiveness        float64       `json:"certAttractiveness"`
	AccumCertInvestment       float64       `json:"accumCertInvestment"`
	AccumInfectionInvestment  float64       `json:"accumInfectionInvestment"`
	AccumWasteInvestment      float64       `json:"accumWasteInvestment"`
	AnvisaAlerts              float64       `json:"anvisaAlerts"`
	AnvisaInspections         float64       `json:"anvisaInspections"`
	AnvisaFine                float64       `json:"anvisaFine"`
	CertSuccess               float64       `json:"certSuccess"`
	PeriodCertInvestment      float64       `json:"periodCertInvestment"`
	PeriodInfectionInvestment float64       `json:"periodInfectionInvestment"`
	WasteOutsourcingSpend     float64       `json:"wasteOutsourcingSpend"`
	GovernanceInfectionScore  float64       `json:"governanceInfectionScore"`
	Status                    QualityStatus `json:"status"`
}

// ClassifyQuality applies the regulatory severity ladder. Fines or repeated
// alerts outrank certifications.
func ClassifyQuality(certifications, anvisaFine, anvisaAlerts float64) QualityStatus {
	switch {
	case anvisaFine > 0 || anvisaAlerts > 2:
		return QualityCritical
	case certifications > 0 && anvisaFine == 0:
		return QualityExcellent
	default:
		return QualityAdequate
	}
}

// BuildQualityRows converts snapshots into quality rows ordered by team number.
func BuildQualityRows(snapshots map[int]*model.TeamSnapshot) []QualityRow {
	teams := sortedSnapshots(snapshots)
	rows := make([]QualityRow, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, QualityRow{
			Team:                      team.TeamName,
			TeamNumber:                team.TeamNumber,
			InfectionRate:             team.Value("atratividadeParcial_taxaInfeccao"),
			InfectionAttractiveness:   team.Value("atratividadeParcial_atratividade_Infeccao"),
			Certifications:            team.Value("numeroCertificacoes"),
			CertAttractiveness:        team.Value("atratividadeParcial_certificacoesInternacionais"),
			AccumCertInvestment:       team.Value("investimentosAcumuladosCertificacao"),
			AccumInfectionInvestment:  team.Value("investimentosACumuladosControleInfeccao"),
			AccumWasteInvestment:      team.Value("investimentosAcumuladosLixo"),
			AnvisaAlerts:              team.Value("alertaAnvisa"),
			AnvisaInspections:         team.Value("fiscalizacaoAnvisa"),
			AnvisaFine:                team.Value("multaAnvisa"),
			CertSuccess:               team.Value("sucessoCertificacoes"),
			PeriodCertInvestment:      team.Value("fdinvestimentocertificaointernacional"),
			PeriodInfectionInvestment: team.Value("fdinvestimentocontroleinfeccao"),
			WasteOutsourcingSpend:     team.Value("gastosEmTerceirizacaoDelixo"),
			GovernanceInfectionScore:  team.Value("governancaCorporativa_atratividadeParcial_taxaInfeccao"),
			Status:                    ClassifyQuality(team.Value("numeroCertificacoes"), team.Value("multaAnvisa"), team.Value("alertaAnvisa")),
		})
	}
	return rows
}

// Quality derives the regulatory compliance report for a period.
func (a *Analyzer) Quality(ctx context.Context, groupID, period int) ([]QualityRow, error) {
	snapshots, err := a.store.Variables(ctx, groupID, period, qualityCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: quality variables")
	}
	return BuildQualityRows(snapshots), nil
}

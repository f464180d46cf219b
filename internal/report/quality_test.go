package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

func TestClassifyQuality(t *testing.T) {
	tests := []struct {
		name           string
		certifications float64
		anvisaFine     float64
		anvisaAlerts   float64
		expected       QualityStatus
	}{
		{"fine is critical", 2, 1, 0, QualityCritical},
		{"repeated alerts are critical", 2, 0, 3, QualityCritical},
		{"two alerts are tolerated", 0, 0, 2, QualityAdequate},
		{"certified and clean", 1, 0, 0, QualityExcellent},
		{"certified with alerts still excellent", 1, 0, 2, QualityExcellent},
		{"no certifications", 0, 0, 0, QualityAdequate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyQuality(tt.certifications, tt.anvisaFine, tt.anvisaAlerts))
		})
	}
}

func TestBuildQualityRows(t *testing.T) {
	snapshots := map[int]*model.TeamSnapshot{
		2: snap(2, map[string]float64{
			"numeroCertificacoes": 2,
		}),
		1: snap(1, map[string]float64{
			"multaAnvisa":                      50000,
			"alertaAnvisa":                     1,
			"fiscalizacaoAnvisa":               2,
			"atratividadeParcial_taxaInfeccao": 3.2,
		}),
	}

	rows := BuildQualityRows(snapshots)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].TeamNumber)
	assert.Equal(t, QualityCritical, rows[0].Status)
	assert.Equal(t, 50000.0, rows[0].AnvisaFine)
	assert.Equal(t, 1.0, rows[0].AnvisaAlerts)
	assert.Equal(t, 2.0, rows[0].AnvisaInspections)
	assert.Equal(t, 3.2, rows[0].InfectionRate)

	assert.Equal(t, 2, rows[1].TeamNumber)
	assert.Equal(t, QualityExcellent, rows[1].Status)
	assert.Equal(t, 2.0, rows[1].Certifications)
}

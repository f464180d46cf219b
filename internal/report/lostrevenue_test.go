package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

func TestClassifyDominance(t *testing.T) {
	assert.Equal(t, LossOverload, ClassifyDominance(300, 100))
	assert.Equal(t, LossIdleness, ClassifyDominance(100, 300))
	assert.Equal(t, LossBalanced, ClassifyDominance(150, 120))
	assert.Equal(t, LossBalanced, ClassifyDominance(0, 0))
	// Exactly 1.5x is still balanced; dominance needs a strict excess.
	assert.Equal(t, LossBalanced, ClassifyDominance(150, 100))
}

func TestBuildLostRevenueRows_PerService(t *testing.T) {
	snapshots := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{
			"atendimentos_prontoAtendimento":        1000,
			"receita_liquida_prontoAtendimento":     50000,
			"atendimentosPerdidosprontoAtendimento": 200,
			"ociosidade_prontoAtendimento":          100,
			"margem_contribuicao_prontoAtendimento": 20000,
		}),
	}

	rows := BuildLostRevenueRows(snapshots)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Services, 3)

	emergency := rows[0].Services[0]
	assert.Equal(t, "Pronto Atendimento", emergency.Service)
	assert.InDelta(t, 50.0, emergency.RevenuePerUnit, 0.001)
	assert.InDelta(t, 10000.0, emergency.LostRevenue, 0.001)
	assert.Equal(t, 100.0, emergency.Idleness)
	// marginPerUnit = 20000/1000 = 20; idleness revenue = 100 * 20.
	assert.InDelta(t, 2000.0, emergency.IdlenessRevenue, 0.001)
	assert.Equal(t, LossOverload, emergency.Dominant)
}

func TestBuildLostRevenueRows_InpatientHasNoIdleness(t *testing.T) {
	snapshots := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{
			"atendimentos_internacao":        500,
			"receita_liquida_internacao":     25000,
			"margem_contribuicao_internacao": 10000,
			"ociosidade_internacao":          9999,
		}),
	}

	rows := BuildLostRevenueRows(snapshots)
	require.Len(t, rows, 1)

	inpatient := rows[0].Services[1]
	assert.Equal(t, 0.0, inpatient.Idleness)
	assert.Equal(t, 0.0, inpatient.IdlenessRevenue)
}

func TestBuildLostRevenueRows_ZeroAttendedGuard(t *testing.T) {
	snapshots := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{
			"receita_liquida_prontoAtendimento":     1000,
			"atendimentosPerdidosprontoAtendimento": 50,
		}),
	}

	rows := BuildLostRevenueRows(snapshots)
	require.Len(t, rows, 1)

	emergency := rows[0].Services[0]
	assert.Equal(t, 0.0, emergency.RevenuePerUnit)
	assert.Equal(t, 0.0, emergency.LostRevenue)
	assert.Equal(t, 50.0, emergency.LostVolume)
}

func TestBuildLostRevenueRows_Totals(t *testing.T) {
	snapshots := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{
			"atendimentos_prontoAtendimento":        100,
			"receita_liquida_prontoAtendimento":     10000,
			"atendimentosPerdidosprontoAtendimento": 10,

			"atendimentos_internacao":        100,
			"receita_liquida_internacao":     10000,
			"atendimentosPerdidosinternacao": 10,
		}),
	}

	rows := BuildLostRevenueRows(snapshots)
	require.Len(t, rows, 1)
	row := rows[0]

	// Each service loses 10 * 100 = 1000; no idleness anywhere.
	assert.InDelta(t, 2000.0, row.TotalLostRevenue, 0.001)
	assert.InDelta(t, 10.0, row.PctRevenueLost, 0.001)
	assert.Equal(t, LossOverload, row.Dominant)
}

func TestBuildLostRevenueRows_ZeroRevenueTeam(t *testing.T) {
	snapshots := map[int]*model.TeamSnapshot{
		1: snap(1, nil),
	}

	rows := BuildLostRevenueRows(snapshots)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].TotalLostRevenue)
	assert.Equal(t, 0.0, rows[0].PctRevenueLost)
	assert.Equal(t, LossBalanced, rows[0].Dominant)
}

package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

func TestClassifyPricePosition(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		marketAvg float64
		expected  PricePosition
	}{
		{"well above", 110, 100, PriceAboveAverage},
		{"well below", 90, 100, PriceBelowAverage},
		{"inside upper band", 104, 100, PriceAtAverage},
		{"inside lower band", 96, 100, PriceAtAverage},
		{"exactly average", 100, 100, PriceAtAverage},
		{"no market data", 50, 0, PriceAtAverage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyPricePosition(tt.price, tt.marketAvg))
		})
	}
}

func TestBuildPricingRows_AvgPriceAndPositions(t *testing.T) {
	decisions := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{
			"fdreceitapa":               100,
			"fdreceitaint":              200,
			"fdreceitaaltacomplexidade": 300,
		}),
	}
	results := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{
			"medias_prontoAtendimento":          90,
			"medias_internacao":                 200,
			"medias_altaComplexidade":           330,
			"marketShareAtendimentosinternacao": 25.5,
		}),
	}

	rows := BuildPricingRows(decisions, results)
	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, 200.0, row.AvgPrice)
	assert.Equal(t, PriceAboveAverage, row.Services["emergency"].Position)
	assert.Equal(t, PriceAtAverage, row.Services["inpatient"].Position)
	assert.Equal(t, PriceBelowAverage, row.Services["surgery"].Position)
	assert.Equal(t, 25.5, row.Services["inpatient"].MarketShare)
}

func TestBuildPricingRows_ChannelAcceptance(t *testing.T) {
	decisions := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{
			"boaSaude": 1,
			"tipTop":   0,
		}),
	}
	results := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{
			"receita_servico_plano_prontoAtendimento_boaSaude": 300,
			"receita_servico_plano_internacao_boaSaude":        600,
			"receita_servico_plano_altaComplexidade_boaSaude":  900,
			"atratividadeFinal_prontoAtendimento_boaSaude":     60,
			"atratividadeFinal_internacao_boaSaude":            70,
			"atratividadeFinal_altaComplexidade_boaSaude":      80,
			"receita_servico_plano_internacao_tipTop":          9999,
		}),
	}

	rows := BuildPricingRows(decisions, results)
	require.Len(t, rows, 1)
	channels := rows[0].Channels
	require.Len(t, channels, len(payerChannels))

	boaSaude := channels["boaSaude"]
	assert.True(t, boaSaude.Accepted)
	assert.Equal(t, 1800.0, boaSaude.Revenue)
	assert.InDelta(t, 70.0, boaSaude.Attractiveness, 0.001)

	// Unaccepted channels report no numbers even when result rows exist.
	tipTop := channels["tipTop"]
	assert.False(t, tipTop.Accepted)
	assert.Equal(t, 0.0, tipTop.Revenue)
	assert.Equal(t, 0.0, tipTop.Attractiveness)
}

func TestBuildPricingRows_TeamUnionAndNameFallback(t *testing.T) {
	// Team 1 has only decisions, team 2 only results, team 3 neither name.
	decisions := map[int]*model.TeamSnapshot{
		1: snap(1, map[string]float64{"fdreceitapa": 100}),
		3: {TeamNumber: 3, Variables: map[string]float64{"fdreceitapa": 50}},
	}
	results := map[int]*model.TeamSnapshot{
		2: snap(2, map[string]float64{"medias_internacao": 150}),
	}

	rows := BuildPricingRows(decisions, results)
	require.Len(t, rows, 3)
	assert.Equal(t, "Hospital 1", rows[0].Team)
	assert.Equal(t, "Hospital 2", rows[1].Team)
	assert.Equal(t, "Equipe 3", rows[2].Team)

	// Missing sides read as zero, never panic.
	assert.Equal(t, 0.0, rows[0].Services["inpatient"].MarketAvg)
	assert.Equal(t, 0.0, rows[1].Services["emergency"].Price)
}

func TestAnalyzerPricing(t *testing.T) {
	st := &stubStore{
		decisions: map[int]*model.TeamSnapshot{
			1: snap(1, map[string]float64{"fdreceitapa": 120, "fdreceitaint": 240, "fdreceitaaltacomplexidade": 360}),
		},
		variables: map[int]*model.TeamSnapshot{
			1: snap(1, map[string]float64{"medias_prontoAtendimento": 100}),
		},
	}
	a := New(st)

	rows, err := a.Pricing(context.Background(), 10, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 240.0, rows[0].AvgPrice)
	assert.Equal(t, PriceAboveAverage, rows[0].Services["emergency"].Position)
}

package report

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
)

// PricePosition labels a declared price against the market average. The 5%
// dead-band keeps ordinary pricing noise unlabeled.
type PricePosition string

const (
	PriceAboveAverage PricePosition = "above average"
	PriceBelowAverage PricePosition = "below average"
	PriceAtAverage    PricePosition = ""
)

const priceDeadBand = 0.05

// ServicePricing is one team's pricing picture for one service line.
type ServicePricing struct {
	Price       float64       `json:"price"`
	MarketShare float64       `json:"marketShare"`
	MarketAvg   float64       `json:"marketAvg"`
	Position    PricePosition `json:"position,omitempty"`
}

// ChannelMetric is one payer channel's revenue and attractiveness for a
// team. When the channel is not accepted the numbers are meaningless and
// renderers show "not applicable" instead of zero.
type ChannelMetric struct {
	Accepted       bool    `json:"accepted"`
	Revenue        float64 `json:"revenue"`
	Attractiveness float64 `json:"attractiveness"`
}

// PricingRow is one team's pricing and market-share analysis.
type PricingRow struct {
	Team       string                    `json:"team"`
	TeamNumber int                       `json:"teamNumber"`
	Services   map[string]ServicePricing `json:"services"`
	AvgPrice   float64                   `json:"avgPrice"`
	Channels   map[string]ChannelMetric  `json:"channels"`
}

// priceDecisionCodes maps service line key to the declared-price decision code.
var priceDecisionCodes = map[string]string{
	"emergency": "fdreceitapa",
	"inpatient": "fdreceitaint",
	"surgery":   "fdreceitaaltacomplexidade",
}

// ClassifyPricePosition labels price against the market average with a 5%
// dead-band. A zero market average leaves the price unlabeled.
func ClassifyPricePosition(price, marketAvg float64) PricePosition {
	if marketAvg <= 0 {
		return PriceAtAverage
	}
	switch {
	case price > marketAvg*(1+priceDeadBand):
		return PriceAboveAverage
	case price < marketAvg*(1-priceDeadBand):
		return PriceBelowAverage
	default:
		return PriceAtAverage
	}
}

// BuildPricingRows joins pricing decisions against market results. Teams
// appearing in either input are included; names fall back to the decision or
// result snapshot, whichever exists.
func BuildPricingRows(decisions, results map[int]*model.TeamSnapshot) []PricingRow {
	numbers := make(map[int]bool, len(decisions)+len(results))
	for n := range decisions {
		numbers[n] = true
	}
	for n := range results {
		numbers[n] = true
	}
	sorted := make([]int, 0, len(numbers))
	for n := range numbers {
		sorted = append(sorted, n)
	}
	sort.Ints(sorted)

	rows := make([]PricingRow, 0, len(sorted))
	for _, teamNumber := range sorted {
		dec := decisions[teamNumber]
		res := results[teamNumber]

		name := ""
		if dec != nil {
			name = dec.TeamName
		}
		if name == "" && res != nil {
			name = res.TeamName
		}
		if name == "" {
			name = ptBR.Sprintf("Equipe %d", teamNumber)
		}

		services := make(map[string]ServicePricing, len(ServiceLines))
		priceSum := 0.0
		for _, svc := range ServiceLines {
			price := dec.Value(priceDecisionCodes[svc.Key])
			marketAvg := res.Value("medias_" + svc.Suffix)
			priceSum += price
			services[svc.Key] = ServicePricing{
				Price:       price,
				MarketShare: res.Value("marketShareAtendimentos" + svc.Suffix),
				MarketAvg:   marketAvg,
				Position:    ClassifyPricePosition(price, marketAvg),
			}
		}

		channels := make(map[string]ChannelMetric, len(payerChannels))
		for _, ch := range payerChannels {
			accepted := dec.Value(ch) == 1
			metric := ChannelMetric{Accepted: accepted}
			if accepted {
				for _, svc := range ServiceLines {
					metric.Revenue += res.Value("receita_servico_plano_" + svc.Suffix + "_" + ch)
					metric.Attractiveness += res.Value("atratividadeFinal_" + svc.Suffix + "_" + ch)
				}
				metric.Attractiveness /= float64(len(ServiceLines))
			}
			channels[ch] = metric
		}

		rows = append(rows, PricingRow{
			Team:       name,
			TeamNumber: teamNumber,
			Services:   services,
			AvgPrice:   priceSum / float64(len(ServiceLines)),
			Channels:   channels,
		})
	}
	return rows
}

// Pricing derives the price positioning and payer-channel report. Decision
// and result codes come from two independent store reads.
func (a *Analyzer) Pricing(ctx context.Context, groupID, period int) ([]PricingRow, error) {
	decisions, err := a.store.Decisions(ctx, groupID, period, pricingDecisionCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: pricing decisions")
	}
	results, err := a.store.Variables(ctx, groupID, period, pricingResultCodes)
	if err != nil {
		return nil, eris.Wrap(err, "report: pricing variables")
	}
	return BuildPricingRows(decisions, results), nil
}

// Package report derives the tutor-facing analytics from raw simulation
// variables: operational efficiency, profitability, benchmarking, financial
// risk, governance, strategic alignment, pricing, quality, lost revenue and
// time series. Every derivation is a pure single-pass computation over
// per-team snapshots fetched from the store.
package report

// ServiceLine describes one of the three hospital business units the
// simulator models.
type ServiceLine struct {
	Key    string // stable identifier: "emergency", "inpatient", "surgery"
	Label  string // display label, as the simulator names it
	Suffix string // variable-code suffix, e.g. "prontoAtendimento"

	// LimitCode is the explicit capacity-limit variable. Empty for inpatient:
	// the simulator has no over-provisioning concept for beds, so capacity is
	// proxied by current demand and no idleness signal exists.
	LimitCode   string
	HasIdleness bool
}

// ServiceLines lists the three service lines in display order.
var ServiceLines = []ServiceLine{
	{
		Key:         "emergency",
		Label:       "Pronto Atendimento",
		Suffix:      "prontoAtendimento",
		LimitCode:   "limites_prontoAtendimento",
		HasIdleness: true,
	},
	{
		Key:    "inpatient",
		Label:  "Internação sem Cirurgia",
		Suffix: "internacao",
	},
	{
		Key:         "surgery",
		Label:       "Cirurgia / Alta Complexidade",
		Suffix:      "altaComplexidade",
		LimitCode:   "limites_altaComplexidade",
		HasIdleness: true,
	},
}

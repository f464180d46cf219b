package facilitation

import (
	"fmt"
	"strings"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
	"github.com/marispinelli3322/tutor-copilot/internal/report"
)

// PromptData is everything the prompt builder needs about one period.
type PromptData struct {
	Game          *model.Game
	Teams         []model.Team
	Period        int
	Efficiency    map[string]report.ServiceEfficiencyReport
	Profitability report.ProfitabilityReport
	Benchmarking  []report.BenchmarkRow
}

// BuildPrompt renders the facilitation guide prompt in Brazilian Portuguese.
// The data summaries are plain text so the model sees numbers, not JSON.
func BuildPrompt(d PromptData) string {
	teamNames := make([]string, 0, len(d.Teams))
	for _, t := range d.Teams {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("Equipe %d", t.Number)
		}
		teamNames = append(teamNames, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Você é um consultor especialista em jogos de simulação de hospitais. Analise os dados abaixo do Trimestre %d do jogo %q (%s) com %d equipes competindo: %s.\n\n",
		d.Period, d.Game.Code, d.Game.SimulationName, len(d.Teams), strings.Join(teamNames, ", "))

	b.WriteString("## DADOS DE EFICIÊNCIA OPERACIONAL (Capacidade vs Demanda)\n\n")
	b.WriteString(efficiencySummary(d.Efficiency))

	b.WriteString("\n\n## DADOS DE LUCRATIVIDADE (por linha de serviço)\n\n")
	b.WriteString(profitabilitySummary(d.Profitability))

	b.WriteString("\n\n## RANKING GERAL (Benchmarking)\n\n")
	b.WriteString(benchmarkSummary(d.Benchmarking))

	b.WriteString(`

---

Com base nestes dados, gere um Guia de Facilitação para o tutor/professor que vai conduzir a discussão em sala. O guia deve conter:

1. **RESUMO EXECUTIVO** (3-4 frases): Visão geral do trimestre — quem está se destacando, quais são as principais tensões competitivas.

2. **PERGUNTAS DE ABERTURA** (3 perguntas): Perguntas provocativas para abrir a discussão, sem revelar diretamente os dados mas estimulando reflexão.

3. **ANÁLISE POR TEMA** — Para cada tema abaixo, forneça 2 perguntas direcionadas e 1 insight que o tutor pode usar:
   - Gestão de Capacidade (eficiência operacional)
   - Estratégia de Preços e Receita (lucratividade)
   - Posicionamento Competitivo (benchmarking)

4. **DESTAQUES PARA DISCUSSÃO** (3-4 bullets): Situações específicas de equipes que merecem atenção — decisões ousadas, erros evidentes, recuperações, ou estratégias divergentes.

5. **PERGUNTA DE ENCERRAMENTO** (1 pergunta): Uma pergunta reflexiva para fechar a sessão, conectando os aprendizados ao mundo real da gestão hospitalar.

Regras:
- Use linguagem profissional mas acessível
- Referencie equipes pelo nome
- Inclua números específicos quando relevante
- Escreva em português brasileiro
- Use formatação markdown`)

	return b.String()
}

func efficiencySummary(reports map[string]report.ServiceEfficiencyReport) string {
	sections := make([]string, 0, len(reports))
	for _, svc := range report.ServiceLines {
		rep, ok := reports[svc.Key]
		if !ok {
			continue
		}

		var overloaded, idle, okTeams []string
		for _, t := range rep.Teams {
			switch {
			case t.UnmetDemand > 0:
				overloaded = append(overloaded, fmt.Sprintf("%s (%.0f perdidos, %.1f%%)", t.Team, t.UnmetDemand, t.UtilizationRate))
			case t.Status == report.StatusOvercapacity:
				idle = append(idle, fmt.Sprintf("%s (%.1f%%)", t.Team, t.UtilizationRate))
			case t.Status == report.StatusOK:
				okTeams = append(okTeams, fmt.Sprintf("%s (%.1f%%)", t.Team, t.UtilizationRate))
			}
		}

		sections = append(sections, fmt.Sprintf("%s:\n  Sobrecarga: %s\n  Ociosidade: %s\n  OK: %s",
			rep.Service, orNone(overloaded), orNone(idle), orNone(okTeams)))
	}
	return strings.Join(sections, "\n\n")
}

func profitabilitySummary(rep report.ProfitabilityReport) string {
	// Group by team, keeping first-seen team order.
	var order []string
	byTeam := make(map[string][]string)
	for _, r := range rep.Rows {
		if _, ok := byTeam[r.Team]; !ok {
			order = append(order, r.Team)
		}
		byTeam[r.Team] = append(byTeam[r.Team], fmt.Sprintf(
			"%s: receita bruta R$%.1fM, glosa R$%.1fM, margem contribuição %.1f%%",
			r.Service, r.TotalRevenue/1e6, r.Disallowances/1e6, r.MarginPercent))
	}

	sections := make([]string, 0, len(order))
	for _, team := range order {
		sections = append(sections, fmt.Sprintf("%s:\n  %s", team, strings.Join(byTeam[team], "\n  ")))
	}
	return strings.Join(sections, "\n\n")
}

func benchmarkSummary(rows []report.BenchmarkRow) string {
	lines := make([]string, 0, len(rows))
	for _, b := range rows {
		lines = append(lines, fmt.Sprintf(
			"#%d %s: ação R$%.2f, receita R$%.1fM, resultado op. R$%.1fM (margem %.1f%%), %.0f vidas, %.0f médicos",
			b.OverallRanking, b.Team, b.SharePrice, b.NetRevenue/1e6, b.NetOperatingIncome/1e6,
			b.OperatingMargin, b.PatientsAttended, b.RegisteredDoctors))
	}
	return strings.Join(lines, "\n")
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "nenhum"
	}
	return strings.Join(items, ", ")
}

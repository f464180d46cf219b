package report

// Variable-code groups, one per analyzer. The simulator emits 444 codes per
// team per period; each analyzer pivots only the subset it derives from.

var efficiencyCodes = []string{
	"atendimentos_prontoAtendimento",
	"atendimentos_internacao",
	"atendimentos_altaComplexidade",
	"atendimentosPerdidosprontoAtendimento",
	"atendimentosPerdidosinternacao",
	"atendimentosPerdidosaltaComplexidade",
	"demandaFinal_prontoAtendimento",
	"demandaFinal_internacao",
	"demandaFinal_altaComplexidade",
	"limites_prontoAtendimento",
	"limites_altaComplexidade",
	"ociosidade_prontoAtendimento",
	"ociosidade_altaComplexidade",
}

var profitabilityCodes = []string{
	"receita_total_prontoAtendimento",
	"receita_total_internacao",
	"receita_total_altaComplexidade",
	"receita_liquida_prontoAtendimento",
	"receita_liquida_internacao",
	"receita_liquida_altaComplexidade",
	"glosa_prontoAtendimento",
	"glosa_internacao",
	"glosa_altaComplexidade",
	"inadimplenciaParticularesprontoAtendimento",
	"inadimplenciaParticularesinternacao",
	"inadimplenciaParticularesaltaComplexidade",
	"custo_insumos_prontoAtendimento",
	"custo_insumos_internacao",
	"custo_insumos_altaComplexidade",
	"custo_pessoal_prontoAtendimento",
	"custo_pessoal_internacao",
	"custo_pessoal_altaComplexidade",
	"margem_contribuicao_prontoAtendimento",
	"margem_contribuicao_internacao",
	"margem_contribuicao_altaComplexidade",
	"percentual_total_margem_contribuicao_prontoAtendimento",
	"percentual_total_margem_contribuicao_internacao",
	"percentual_total_margem_contribuicao_altaComplexidade",
}

var benchmarkingCodes = []string{
	"valor_acao",
	"receitaLiquidaTotal",
	"resultadoOperacionalLiquido",
	"resultadoOperacionalLiquidoAcumulado",
	"vidasAtendidas",
	"medicosCadastrados",
	"capitalCirculanteLiq",
	"patrimonioLiquido",
	"colocacaoRankingPeriodo",
	"numeroPontosPeriodo",
	"saldoFinal",
	"receitasOperacionais",
	"despesasTotais",
	"resultadoBruto",
	"resultadoAntesDosImpostos",
}

var timeseriesCodes = []string{
	"valor_acao",
	"receitaLiquidaTotal",
	"resultadoOperacionalLiquido",
	"governancaCorporativa",
}

var financialRiskCodes = []string{
	"saldoFinal",
	"saldoInicialTrimestre",
	"capitalCirculanteLiq",
	"patrimonioLiquido",
	"totalAtivo",
	"totalPassivo",
	"creditoRotativo",
	"utilizacaoCreditoRotativo",
	"hospitalPercentualCreditoRotativo",
	"despesaCreditoRotativo",
	"despesa_emprestimo",
	"taxa_juros_emprestimo",
	"planoEmergencial",
	"receitaLiquidaTotal",
}

var strategyResultCodes = []string{
	"valor_acao",
	"medicosCadastrados",
	"receitaLiquidaTotal",
	"resultadoOperacionalLiquidoAcumulado",
	"capitalCirculanteLiq",
	"vidasAtendidas",
	"governancaCorporativa",
}

var governanceCodes = []string{
	"governancaCorporativa",
	"governancaCorporativa_creditoRotativo",
	"governancaCorporativa_totalDispensa",
	"governancaCorporativa_usoMaoOBraExtra",
	"governancaCorporativa_numeroCertificacoes",
	"governancaCorporativa_liberouRelatoriosFinanceirosHospitais",
	"governancaCorporativa_atratividadeParcial_taxaInfeccao",
}

// Pricing decisions: declared prices per service line plus the seven payer
// channel acceptance flags.
var pricingDecisionCodes = []string{
	"fdreceitapa",
	"fdreceitaint",
	"fdreceitaaltacomplexidade",
	"boaSaude",
	"goodShape",
	"healthy",
	"outras",
	"particulares",
	"tipTop",
	"unique",
}

// payerChannels lists the simulator's seven payer channels.
var payerChannels = []string{
	"boaSaude",
	"goodShape",
	"healthy",
	"outras",
	"particulares",
	"tipTop",
	"unique",
}

// pricingResultCodes covers market share, per-service market average price
// and the (service x payer channel) revenue/attractiveness breakouts.
var pricingResultCodes = buildPricingResultCodes()

func buildPricingResultCodes() []string {
	codes := []string{
		"marketShareAtendimentosprontoAtendimento",
		"marketShareAtendimentosinternacao",
		"marketShareAtendimentosaltaComplexidade",
		"medias_prontoAtendimento",
		"medias_internacao",
		"medias_altaComplexidade",
	}
	for _, svc := range ServiceLines {
		for _, ch := range payerChannels {
			codes = append(codes, "receita_servico_plano_"+svc.Suffix+"_"+ch)
		}
	}
	for _, svc := range ServiceLines {
		for _, ch := range payerChannels {
			codes = append(codes, "atratividadeFinal_"+svc.Suffix+"_"+ch)
		}
	}
	return codes
}

var qualityCodes = []string{
	"atratividadeParcial_taxaInfeccao",
	"atratividadeParcial_atratividade_Infeccao",
	"atratividadeParcial_certificacoesInternacionais",
	"numeroCertificacoes",
	"investimentosAcumuladosCertificacao",
	"investimentosACumuladosControleInfeccao",
	"investimentosAcumuladosLixo",
	"alertaAnvisa",
	"fiscalizacaoAnvisa",
	"multaAnvisa",
	"sucessoCertificacoes",
	"fdinvestimentocertificaointernacional",
	"fdinvestimentocontroleinfeccao",
	"gastosEmTerceirizacaoDelixo",
	"governancaCorporativa_atratividadeParcial_taxaInfeccao",
}

var lostRevenueCodes = []string{
	"ociosidade_prontoAtendimento",
	"ociosidade_altaComplexidade",
	"atendimentosPerdidosprontoAtendimento",
	"atendimentosPerdidosinternacao",
	"atendimentosPerdidosaltaComplexidade",
	"receita_liquida_prontoAtendimento",
	"receita_liquida_internacao",
	"receita_liquida_altaComplexidade",
	"atendimentos_prontoAtendimento",
	"atendimentos_internacao",
	"atendimentos_altaComplexidade",
	"margem_contribuicao_prontoAtendimento",
	"margem_contribuicao_internacao",
	"margem_contribuicao_altaComplexidade",
	"limites_prontoAtendimento",
	"limites_altaComplexidade",
	"demandaFinal_prontoAtendimento",
	"demandaFinal_internacao",
	"demandaFinal_altaComplexidade",
}

// internal/models/status.go
package models

// Convenção de status textual das cotações
const (
	CotacaoRascunho  = "rascunho"
	CotacaoEnviada   = "enviada"
	CotacaoRecebendo = "recebendo"
	CotacaoRecebida  = "recebida"
	CotacaoEmAnalise = "em_analise"
	CotacaoAprovada  = "aprovada"
	CotacaoPaga      = "paga"
	CotacaoEmEntrega = "em_entrega"
	CotacaoExpirada  = "expirada"
)

// CotacaoStatusValidos é o conjunto aceito em escritas dirigidas pelo cliente.
var CotacaoStatusValidos = map[string]bool{
	CotacaoRascunho:  true,
	CotacaoEnviada:   true,
	CotacaoRecebendo: true,
	CotacaoRecebida:  true,
	CotacaoEmAnalise: true,
	CotacaoAprovada:  true,
	CotacaoPaga:      true,
	CotacaoEmEntrega: true,
	CotacaoExpirada:  true,
}

// CotacaoBloqueadaParaEnvio lista os status que travam novos envios de
// proposta. "em_aprovacao" e "finalizada" ficaram fora do enum corrente,
// mas registros antigos ainda carregam esses valores e continuam bloqueando.
var CotacaoBloqueadaParaEnvio = map[string]bool{
	"em_aprovacao":   true,
	CotacaoAprovada:  true,
	CotacaoPaga:      true,
	CotacaoEmEntrega: true,
	"finalizada":     true,
}

// Status textual das propostas
const (
	PropostaRascunho  = "rascunho"
	PropostaPendente  = "pendente"
	PropostaEnviada   = "enviada"
	PropostaAprovada  = "aprovada"
	PropostaRejeitada = "rejeitada"
	PropostaExpirada  = "expirada"
)

// Status textual das visitas técnicas
const (
	VisitaAgendada   = "agendada"
	VisitaConfirmada = "confirmada"
	VisitaAtrasada   = "atrasada"
)

// Escopo de fornecedores de uma cotação
const (
	EscopoLocal  = "local"
	EscopoGlobal = "global"
	EscopoTodas  = "todas"
)

// Status derivado exibido ao fornecedor (nunca persistido)
const (
	VisaoPendente        = "pendente"
	VisaoPropostaEnviada = "proposta_enviada"
	VisaoAprovada        = "aprovada"
	VisaoRejeitada       = "rejeitada"
	VisaoExpirada        = "expirada"
)

// Perfis de acesso
const (
	PerfilCliente    = "cliente"
	PerfilFornecedor = "fornecedor"
)

package proposta

import (
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
)

// StatusParaFornecedor deriva o status exibido ao fornecedor a partir da
// proposta dele (ou da ausência dela). Função pura: nunca consulta relógio
// nem banco; "expirada" já chega pré-computada na proposta.
func StatusParaFornecedor(p *Proposta) string {
	if p == nil {
		return models.VisaoPendente
	}
	switch p.Status {
	case models.PropostaEnviada:
		return models.VisaoPropostaEnviada
	case models.PropostaAprovada:
		return models.VisaoAprovada
	case models.PropostaRejeitada:
		return models.VisaoRejeitada
	case models.PropostaExpirada:
		return models.VisaoExpirada
	default:
		// rascunho, pendente ou qualquer valor legado
		return models.VisaoPendente
	}
}

// statusTerminalParaFornecedor indica que o fornecedor não pode mais reenviar.
func statusTerminalParaFornecedor(status string) bool {
	switch status {
	case models.PropostaEnviada, models.PropostaAprovada,
		models.PropostaRejeitada, models.PropostaExpirada:
		return true
	}
	return false
}

package proposta

import (
	"testing"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
)

func TestStatusParaFornecedor(t *testing.T) {
	casos := []struct {
		nome     string
		proposta *Proposta
		esperado string
	}{
		{"sem proposta", nil, models.VisaoPendente},
		{"rascunho", &Proposta{Status: models.PropostaRascunho}, models.VisaoPendente},
		{"pendente", &Proposta{Status: models.PropostaPendente}, models.VisaoPendente},
		{"enviada", &Proposta{Status: models.PropostaEnviada}, models.VisaoPropostaEnviada},
		{"aprovada", &Proposta{Status: models.PropostaAprovada}, models.VisaoAprovada},
		{"rejeitada", &Proposta{Status: models.PropostaRejeitada}, models.VisaoRejeitada},
		{"expirada", &Proposta{Status: models.PropostaExpirada}, models.VisaoExpirada},
		{"valor legado desconhecido", &Proposta{Status: "em_negociacao"}, models.VisaoPendente},
		{"status vazio", &Proposta{Status: ""}, models.VisaoPendente},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			if got := StatusParaFornecedor(c.proposta); got != c.esperado {
				t.Fatalf("esperava %q, veio %q", c.esperado, got)
			}
		})
	}
}

func TestStatusTerminalParaFornecedor(t *testing.T) {
	terminais := []string{
		models.PropostaEnviada,
		models.PropostaAprovada,
		models.PropostaRejeitada,
		models.PropostaExpirada,
	}
	for _, s := range terminais {
		if !statusTerminalParaFornecedor(s) {
			t.Fatalf("%q deveria ser terminal", s)
		}
	}

	abertos := []string{models.PropostaRascunho, models.PropostaPendente, "", "qualquer"}
	for _, s := range abertos {
		if statusTerminalParaFornecedor(s) {
			t.Fatalf("%q não deveria ser terminal", s)
		}
	}
}

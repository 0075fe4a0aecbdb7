package proposta

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/cotacao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/notificacao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/visita"
	"gorm.io/gorm"
)

// Rejeições do gate de envio. Todas são detectadas antes de qualquer escrita.
var (
	ErrSemItens            = errors.New("a proposta precisa de ao menos um item")
	ErrNenhumItemValido    = errors.New("nenhum item válido: informe produto, quantidade e preço unitário")
	ErrCotacaoBloqueada    = errors.New("a cotação não aceita mais propostas")
	ErrVisitaNaoConfirmada = errors.New("visita técnica obrigatória ainda não confirmada")
	ErrPropostaJaEnviada   = errors.New("já existe proposta enviada para esta cotação")
)

// Service concentra as regras de ciclo de vida da proposta: rascunho
// idempotente, gate de envio e o avanço best-effort da cotação.
type Service struct {
	Propostas Repository
	Cotacoes  cotacao.Repository
	Visitas   visita.Repository
}

func NewService() *Service {
	return &Service{
		Propostas: NewRepository(),
		Cotacoes:  cotacao.NewRepository(),
		Visitas:   visita.NewRepository(),
	}
}

// ResultadoEnvio distingue sucesso pleno de sucesso parcial: a proposta foi
// gravada como enviada mesmo quando o avanço da cotação falhou.
type ResultadoEnvio struct {
	Proposta        *Proposta
	TransicaoFalhou bool
}

func itemValido(it ItemProposta) bool {
	return strings.TrimSpace(it.Produto) != "" && it.Quantidade > 0 && it.PrecoUnitario > 0
}

func preencherTotais(itens []ItemProposta) (total float64) {
	for i := range itens {
		itens[i].TotalLinha = itens[i].Quantidade * itens[i].PrecoUnitario
		total += itens[i].TotalLinha
	}
	return total
}

// SalvarRascunho grava (ou regrava) a proposta do fornecedor para a cotação.
// Itens inválidos são aceitos em rascunho; a validação por item só acontece
// no envio. Chamadas repetidas produzem sempre uma única linha.
func (s *Service) SalvarRascunho(db *gorm.DB, cotacaoID, fornecedorID uint, itens []ItemProposta, termos Termos) (*Proposta, error) {
	if len(itens) == 0 {
		return nil, ErrSemItens
	}

	existente, err := s.Propostas.BuscarPorCotacaoEFornecedor(db, cotacaoID, fornecedorID)
	if err != nil {
		return nil, err
	}

	preencherTotais(itens)

	// rascunho não consolida ValorTotal; o envio recalcula
	p := &Proposta{
		CotacaoID:          cotacaoID,
		FornecedorID:       fornecedorID,
		Itens:              itens,
		PrazoEntregaDias:   termos.PrazoEntregaDias,
		CondicoesPagamento: termos.CondicoesPagamento,
		Frete:              termos.Frete,
		GarantiaMeses:      termos.GarantiaMeses,
		Observacoes:        termos.Observacoes,
		Status:             models.PropostaRascunho,
	}
	if existente != nil {
		// atualização in place: id e status atuais são preservados
		p.Status = existente.Status
		p.EnviadaEm = existente.EnviadaEm
	}

	if err := s.Propostas.Upsert(db, p); err != nil {
		return nil, err
	}
	return s.Propostas.BuscarPorCotacaoEFornecedor(db, cotacaoID, fornecedorID)
}

// Enviar aplica o gate de envio, nesta ordem, cada checagem interrompendo:
//  1. recarrega a cotação e recusa status travados (releitura deliberada,
//     não vale confiar no estado que o front tinha em mãos);
//  2. lista de itens não pode ser vazia;
//  3. ao menos UM item precisa ser válido (regra literal do produto:
//     um item bom basta, mesmo com linhas inválidas na carona);
//  4. cotação que exige visita só envia com visita confirmada.
//
// Passando tudo: ValorTotal = Σ quantidade × preço (frete registrado à
// parte), upsert com status enviada e, em seguida, o avanço best-effort da
// cotação para "recebendo" — falha aí não desfaz a proposta já gravada.
func (s *Service) Enviar(db *gorm.DB, cotacaoID, fornecedorID uint, itens []ItemProposta, termos Termos) (*ResultadoEnvio, error) {
	cot, err := s.Cotacoes.BuscarPorID(db, cotacaoID)
	if err != nil {
		return nil, fmt.Errorf("cotação: %w", err)
	}
	if models.CotacaoBloqueadaParaEnvio[cot.Status] {
		return nil, ErrCotacaoBloqueada
	}

	if len(itens) == 0 {
		return nil, ErrSemItens
	}

	algumValido := false
	for _, it := range itens {
		if itemValido(it) {
			algumValido = true
			break
		}
	}
	if !algumValido {
		return nil, ErrNenhumItemValido
	}

	if cot.ExigeVisita {
		confirmada, err := s.Visitas.ExisteConfirmada(db, cotacaoID, fornecedorID)
		if err != nil {
			return nil, fmt.Errorf("visitas: %w", err)
		}
		if !confirmada {
			return nil, ErrVisitaNaoConfirmada
		}
	}

	existente, err := s.Propostas.BuscarPorCotacaoEFornecedor(db, cotacaoID, fornecedorID)
	if err != nil {
		return nil, err
	}
	if existente != nil && statusTerminalParaFornecedor(existente.Status) {
		return nil, ErrPropostaJaEnviada
	}

	total := preencherTotais(itens)
	agora := time.Now()

	p := &Proposta{
		CotacaoID:          cotacaoID,
		FornecedorID:       fornecedorID,
		Itens:              itens,
		ValorTotal:         total,
		PrazoEntregaDias:   termos.PrazoEntregaDias,
		CondicoesPagamento: termos.CondicoesPagamento,
		Frete:              termos.Frete,
		GarantiaMeses:      termos.GarantiaMeses,
		Observacoes:        termos.Observacoes,
		Status:             models.PropostaEnviada,
		EnviadaEm:          &agora,
	}
	if err := s.Propostas.Upsert(db, p); err != nil {
		return nil, err
	}
	gravada, err := s.Propostas.BuscarPorCotacaoEFornecedor(db, cotacaoID, fornecedorID)
	if err != nil {
		return nil, err
	}

	resultado := &ResultadoEnvio{Proposta: gravada}

	// Avanço condicional: só sai de "enviada"; se a cotação já passou desse
	// ponto (outro fornecedor enviou antes, ou já foi aprovada), nada muda.
	if _, err := s.Cotacoes.AvancarStatus(db, cotacaoID, models.CotacaoEnviada, models.CotacaoRecebendo); err != nil {
		resultado.TransicaoFalhou = true
		log.Printf("proposta %d enviada, mas cotação %d não avançou: %v", gravada.ID, cotacaoID, err)
		go notificacao.EnviarAlertaTransicaoFalhou(cotacaoID, fornecedorID, err)
	}

	return resultado, nil
}

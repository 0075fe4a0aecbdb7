// internal/proposta/handler.go
package proposta

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/comissao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/contrato"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/cotacao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// payload de rascunho e de envio: itens + termos comerciais
type propostaRequest struct {
	Itens []ItemProposta `json:"itens"`
	Termos
}

type decisaoRequest struct {
	Status string `json:"status"` // "aprovada" | "rejeitada"
}

// cotação enriquecida com o status derivado do fornecedor que consulta
type cotacaoParaFornecedor struct {
	cotacao.Cotacao
	StatusFornecedor string `json:"statusFornecedor"`
}

// Handler encapsula DB, service e repositories
type Handler struct {
	DB        *gorm.DB
	Service   *Service
	Cotacoes  cotacao.Repository
	Contratos contrato.Repository
	Comissoes *comissao.Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:        db,
		Service:   NewService(),
		Cotacoes:  cotacao.NewRepository(),
		Contratos: contrato.NewRepository(),
		Comissoes: comissao.NewService(),
	}
}

func (h *Handler) responderErroDeGate(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, ErrSemItens), errors.Is(err, ErrNenhumItemValido):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrCotacaoBloqueada), errors.Is(err, ErrVisitaNaoConfirmada),
		errors.Is(err, ErrPropostaJaEnviada):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "cotação não encontrada", http.StatusNotFound)
	default:
		return false
	}
	return true
}

// SalvarRascunho trata PUT /cotacoes/{id}/proposta
func (h *Handler) SalvarRascunho(w http.ResponseWriter, r *http.Request) {
	cotacaoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da cotação inválido", http.StatusBadRequest)
		return
	}
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var req propostaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.SalvarRascunho(h.DB, uint(cotacaoID), fornecedorID, req.Itens, req.Termos)
	if err != nil {
		if !h.responderErroDeGate(w, err) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Enviar trata POST /cotacoes/{id}/proposta/enviar
func (h *Handler) Enviar(w http.ResponseWriter, r *http.Request) {
	cotacaoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da cotação inválido", http.StatusBadRequest)
		return
	}
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var req propostaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	resultado, err := h.Service.Enviar(h.DB, uint(cotacaoID), fornecedorID, req.Itens, req.Termos)
	if err != nil {
		if !h.responderErroDeGate(w, err) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	resposta := map[string]any{"proposta": resultado.Proposta}
	if resultado.TransicaoFalhou {
		// sucesso parcial: a proposta está enviada; a cotação avança depois
		resposta["avisoTransicao"] = "proposta enviada; atualização do status da cotação pendente"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resposta)
}

// BuscarMinha trata GET /cotacoes/{id}/proposta (a do fornecedor autenticado)
func (h *Handler) BuscarMinha(w http.ResponseWriter, r *http.Request) {
	cotacaoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	p, err := h.Service.Propostas.BuscarPorCotacaoEFornecedor(h.DB, uint(cotacaoID), fornecedorID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "Proposta não encontrada", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// ListarPorCotacao trata GET /cotacoes/{id}/propostas (visão do cliente dono)
func (h *Handler) ListarPorCotacao(w http.ResponseWriter, r *http.Request) {
	cotacaoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	clienteID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)

	c, err := h.Cotacoes.BuscarPorID(h.DB, uint(cotacaoID))
	if err != nil {
		http.Error(w, "Cotação não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && c.ClienteID != clienteID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	list, err := h.Service.Propostas.ListarPorCotacao(h.DB, uint(cotacaoID))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ListarCotacoesParaFornecedor trata GET /fornecedores/me/cotacoes:
// elegibilidade + status derivado, mais novas primeiro.
func (h *Handler) ListarCotacoesParaFornecedor(w http.ResponseWriter, r *http.Request) {
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	cotacoes, err := h.Cotacoes.ListarElegiveisParaFornecedor(h.DB, fornecedorID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	minhas, err := h.Service.Propostas.MapearPorFornecedor(h.DB, fornecedorID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	visao := make([]cotacaoParaFornecedor, 0, len(cotacoes))
	for _, c := range cotacoes {
		visao = append(visao, cotacaoParaFornecedor{
			Cotacao:          c,
			StatusFornecedor: StatusParaFornecedor(minhas[c.ID]),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(visao)
}

// AtualizarStatus trata PATCH /propostas/{id}/status (decisão do cliente).
// Aprovar também move a cotação para "aprovada" e gera contrato e comissão.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da proposta inválido", http.StatusBadRequest)
		return
	}
	clienteID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)

	var req decisaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Status != models.PropostaAprovada && req.Status != models.PropostaRejeitada {
		http.Error(w, "status deve ser 'aprovada' ou 'rejeitada'", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Propostas.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Proposta não encontrada", http.StatusNotFound)
		return
	}

	c, err := h.Cotacoes.BuscarPorID(h.DB, p.CotacaoID)
	if err != nil {
		http.Error(w, "Cotação não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && c.ClienteID != clienteID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	ok, err := h.Service.Propostas.AtualizarStatusSeEnviada(h.DB, uint(id), req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "só propostas enviadas podem ser decididas", http.StatusConflict)
		return
	}
	p.Status = req.Status

	if req.Status == models.PropostaAprovada {
		if err := h.Cotacoes.AtualizarStatus(h.DB, c.ID, models.CotacaoAprovada); err != nil {
			log.Printf("proposta %d aprovada, mas cotação %d não atualizou: %v", p.ID, c.ID, err)
		}

		ct := contrato.Contrato{
			CotacaoID:    c.ID,
			PropostaID:   p.ID,
			FornecedorID: p.FornecedorID,
			ClienteID:    c.ClienteID,
			Valor:        p.ValorTotal,
		}
		if err := h.Contratos.Salvar(h.DB, &ct); err != nil {
			log.Printf("proposta %d aprovada, mas contrato não gerado: %v", p.ID, err)
		}
		if _, err := h.Comissoes.GerarParaProposta(h.DB, p.ID, p.FornecedorID, p.ValorTotal); err != nil {
			log.Printf("proposta %d aprovada, mas comissão não gerada: %v", p.ID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// VerificarExpiradas trata POST /propostas/verificar-expiradas (admin/cron)
func (h *Handler) VerificarExpiradas(w http.ResponseWriter, r *http.Request) {
	total, err := h.Service.Propostas.MarcarExpiradas(h.DB, time.Now())
	if err != nil {
		http.Error(w, "erro ao marcar propostas expiradas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"expiradas": total})
}

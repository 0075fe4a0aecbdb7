// internal/cotacao/handler.go
package cotacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Criar trata POST /cotacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	clienteID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var dto cotacaoCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(dto.Titulo) == "" {
		http.Error(w, "o campo 'titulo' é obrigatório", http.StatusBadRequest)
		return
	}
	if len(dto.Itens) == 0 {
		http.Error(w, "a cotação precisa de ao menos um item", http.StatusBadRequest)
		return
	}

	status := strings.TrimSpace(dto.Status)
	if status == "" {
		status = models.CotacaoEnviada
	}
	if status != models.CotacaoRascunho && status != models.CotacaoEnviada {
		http.Error(w, "status inicial inválido", http.StatusBadRequest)
		return
	}

	escopo := strings.TrimSpace(dto.Escopo)
	if escopo == "" {
		escopo = models.EscopoLocal
	}

	var total float64
	itens := make([]ItemCotacao, 0, len(dto.Itens))
	for _, it := range dto.Itens {
		total += it.Quantidade * it.PrecoReferencia
		itens = append(itens, ItemCotacao{
			Produto:         it.Produto,
			Quantidade:      it.Quantidade,
			PrecoReferencia: it.PrecoReferencia,
		})
	}

	atribuicoes := make([]CotacaoFornecedor, 0, len(dto.FornecedoresIDs))
	for _, fid := range dto.FornecedoresIDs {
		atribuicoes = append(atribuicoes, CotacaoFornecedor{FornecedorID: fid})
	}

	c := Cotacao{
		Titulo:       dto.Titulo,
		Descricao:    dto.Descricao,
		Prazo:        dto.Prazo,
		Total:        total,
		Status:       status,
		Escopo:       escopo,
		FornecedorID: dto.FornecedorID,
		ExigeVisita:  dto.ExigeVisita,
		PrazoVisita:  dto.PrazoVisita,
		ClienteID:    clienteID,
		Itens:        itens,
		Fornecedores: atribuicoes,
	}

	if err := h.Repository.SalvarComCodigo(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar cotação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /cotacoes (as do próprio cliente)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	clienteID, _ := r.Context().Value(auth.CtxUserID).(uint)

	list, err := h.Repository.ListarPorCliente(h.DB, clienteID)
	if err != nil {
		http.Error(w, "Erro ao listar cotações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /cotacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cotação não encontrada", http.StatusNotFound)
		return
	}

	if !h.podeVer(r, c) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// podeVer: cliente dono ou admin sempre; fornecedor só quando elegível
// (já respondeu, escopo aberto ou atribuição direta).
func (h *Handler) podeVer(r *http.Request, c *Cotacao) bool {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	perfil, _ := r.Context().Value(auth.CtxPerfil).(string)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)

	if isAdmin {
		return true
	}
	if perfil == models.PerfilCliente {
		return c.ClienteID == userID
	}
	if perfil != models.PerfilFornecedor || userID == 0 {
		return false
	}

	aberta := c.Status == models.CotacaoEnviada || c.Status == models.CotacaoRecebendo
	if aberta && (c.Escopo == models.EscopoGlobal || c.Escopo == models.EscopoTodas) {
		return true
	}
	if aberta && c.Escopo == models.EscopoLocal && c.FornecedorID == nil {
		return true
	}
	if c.FornecedorID != nil && *c.FornecedorID == userID {
		return true
	}
	for _, a := range c.Fornecedores {
		if a.FornecedorID == userID {
			return true
		}
	}
	var total int64
	if err := h.DB.Table("propostas").
		Where("cotacao_id = ? AND fornecedor_id = ?", c.ID, userID).
		Count(&total).Error; err != nil {
		return false
	}
	return total > 0
}

// AtualizarStatus trata PATCH /cotacoes/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da cotação inválido", http.StatusBadRequest)
		return
	}

	clienteID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)

	var payload atualizarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if payload.Status == "" {
		http.Error(w, "o campo 'status' é obrigatório", http.StatusBadRequest)
		return
	}
	if !models.CotacaoStatusValidos[payload.Status] {
		http.Error(w, "status desconhecido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "cotação não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar cotação", http.StatusInternalServerError)
		return
	}
	if !isAdmin && c.ClienteID != clienteID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.AtualizarStatus(h.DB, uint(id), payload.Status); err != nil {
		http.Error(w, "erro ao atualizar status", http.StatusInternalServerError)
		return
	}

	c.Status = payload.Status
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Deletar trata DELETE /cotacoes/{id}; bloqueado enquanto houver propostas
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	clienteID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cotação não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && c.ClienteID != clienteID {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		if errors.Is(err, ErrPossuiPropostas) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Erro ao excluir cotação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

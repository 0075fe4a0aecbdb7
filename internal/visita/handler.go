// internal/visita/handler.go
package visita

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/cotacao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type agendarRequest struct {
	DataAgendada time.Time `json:"dataAgendada"`
	Observacoes  string    `json:"observacoes"`
}

type reagendarRequest struct {
	DataAgendada time.Time `json:"dataAgendada"`
}

// Handler encapsula DB e repositories
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Cotacoes   cotacao.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Cotacoes:   cotacao.NewRepository(),
	}
}

// Agendar trata POST /cotacoes/{id}/visitas
func (h *Handler) Agendar(w http.ResponseWriter, r *http.Request) {
	cotacaoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da cotação inválido", http.StatusBadRequest)
		return
	}
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var req agendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DataAgendada.IsZero() {
		http.Error(w, "JSON inválido ou data ausente", http.StatusBadRequest)
		return
	}

	c, err := h.Cotacoes.BuscarPorID(h.DB, uint(cotacaoID))
	if err != nil {
		http.Error(w, "Cotação não encontrada", http.StatusNotFound)
		return
	}
	if !c.ExigeVisita {
		http.Error(w, "esta cotação não exige visita técnica", http.StatusBadRequest)
		return
	}

	v := Visita{
		CotacaoID:    uint(cotacaoID),
		FornecedorID: fornecedorID,
		DataAgendada: req.DataAgendada,
		Observacoes:  req.Observacoes,
	}
	if err := h.Repository.Salvar(h.DB, &v); err != nil {
		http.Error(w, "Erro ao agendar visita", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}

// Confirmar trata PATCH /visitas/{id}/confirmar
func (h *Handler) Confirmar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	v, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Visita não encontrada", http.StatusNotFound)
		return
	}
	if v.FornecedorID != fornecedorID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	agora := time.Now()
	ok, err := h.Repository.Confirmar(h.DB, uint(id), agora)
	if err != nil {
		http.Error(w, "erro ao confirmar visita", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "só visitas agendadas podem ser confirmadas", http.StatusConflict)
		return
	}

	v.Status = models.VisitaConfirmada
	v.ConfirmadaEm = &agora
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Reagendar trata PATCH /visitas/{id}/reagendar
func (h *Handler) Reagendar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var req reagendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DataAgendada.IsZero() {
		http.Error(w, "JSON inválido ou data ausente", http.StatusBadRequest)
		return
	}

	v, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Visita não encontrada", http.StatusNotFound)
		return
	}
	if v.FornecedorID != fornecedorID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	ok, err := h.Repository.Reagendar(h.DB, uint(id), req.DataAgendada)
	if err != nil {
		http.Error(w, "erro ao reagendar visita", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "visita confirmada não pode ser reagendada", http.StatusConflict)
		return
	}

	v.Status = models.VisitaAgendada
	v.DataAgendada = req.DataAgendada
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// ListarPorCotacao trata GET /cotacoes/{id}/visitas (as do fornecedor autenticado)
func (h *Handler) ListarPorCotacao(w http.ResponseWriter, r *http.Request) {
	cotacaoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	list, err := h.Repository.ListarPorCotacaoEFornecedor(h.DB, uint(cotacaoID), fornecedorID)
	if err != nil {
		http.Error(w, "Erro ao listar visitas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// VerificarAtrasadas trata POST /visitas/verificar-atrasadas (admin/cron)
func (h *Handler) VerificarAtrasadas(w http.ResponseWriter, r *http.Request) {
	total, err := h.Repository.MarcarAtrasadas(h.DB, time.Now())
	if err != nil {
		http.Error(w, "erro ao marcar visitas atrasadas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"atrasadas": total})
}

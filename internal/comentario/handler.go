package comentario

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarComentarioRequest struct {
	Texto string `json:"texto"`
}

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

// Criar trata POST /cotacoes/{id}/comentarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	cotacaoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da cotação inválido", http.StatusBadRequest)
		return
	}

	var req criarComentarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Texto) == "" {
		http.Error(w, "JSON inválido ou texto vazio", http.StatusBadRequest)
		return
	}

	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	perfil, _ := r.Context().Value(auth.CtxPerfil).(string)

	c := Comentario{
		Texto:       req.Texto,
		CotacaoID:   uint(cotacaoID),
		AutorID:     userID,
		AutorPerfil: perfil,
	}
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar comentário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// ListarPorCotacao trata GET /cotacoes/{id}/comentarios
func (h *Handler) ListarPorCotacao(w http.ResponseWriter, r *http.Request) {
	cotacaoID, _ := strconv.Atoi(mux.Vars(r)["id"])

	list, err := h.Repository.ListarPorCotacao(h.DB, uint(cotacaoID))
	if err != nil {
		http.Error(w, "Erro ao listar comentários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

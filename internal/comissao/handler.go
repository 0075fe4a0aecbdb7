// internal/comissao/handler.go
package comissao

import (
	"encoding/json"
	"net/http"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// ListarMinhas trata GET /fornecedores/me/comissoes
func (h *Handler) ListarMinhas(w http.ResponseWriter, r *http.Request) {
	fornecedorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	list, err := h.Repository.ListByFornecedor(h.DB, fornecedorID)
	if err != nil {
		http.Error(w, "Erro ao listar comissões", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// internal/contrato/handler.go
package contrato

import (
	"encoding/json"
	"net/http"
	"strconv"

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

// BuscarPorID trata GET /contratos/{id} (apenas as partes do contrato)
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}

	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	perfil, _ := r.Context().Value(auth.CtxPerfil).(string)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)

	parte := (perfil == models.PerfilCliente && c.ClienteID == userID) ||
		(perfil == models.PerfilFornecedor && c.FornecedorID == userID)
	if !isAdmin && !parte {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /contratos (os do usuário autenticado, por perfil)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	perfil, _ := r.Context().Value(auth.CtxPerfil).(string)

	var (
		list []Contrato
		err  error
	)
	if perfil == models.PerfilFornecedor {
		list, err = h.Repository.ListarPorFornecedor(h.DB, userID)
	} else {
		list, err = h.Repository.ListarPorCliente(h.DB, userID)
	}
	if err != nil {
		http.Error(w, "Erro ao listar contratos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

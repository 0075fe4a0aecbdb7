package cliente

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/utils"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type createClienteRequest struct {
	Nome     string `json:"nome"`
	CNPJ     string `json:"cnpj"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Logo     string `json:"logo"`
	Senha    string `json:"senha"`
	IsAdmin  bool   `json:"isAdmin"`
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

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorEmailOuCNPJ(h.DB, req.Login)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(c.Senha, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(c.ID, models.PerfilCliente, c.IsAdmin)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Criar cadastra um novo cliente (rota aberta)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req createClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if existente, err := h.Repository.BuscarPorCNPJ(h.DB, req.CNPJ); err == nil && existente != nil {
		http.Error(w, "CNPJ já cadastrado", http.StatusConflict)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "erro ao consultar CNPJ", http.StatusInternalServerError)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	c := Cliente{
		Nome:     req.Nome,
		CNPJ:     req.CNPJ,
		Email:    req.Email,
		Telefone: req.Telefone,
		Logo:     req.Logo,
		Senha:    hash,
		IsAdmin:  req.IsAdmin,
	}

	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		http.Error(w, "erro ao salvar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// Me retorna o cliente autenticado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	c, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

package fornecedor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/notificacao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/utils"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type createFornecedorRequest struct {
	RazaoSocial string `json:"razaoSocial"`
	CNPJ        string `json:"cnpj"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	Cidade      string `json:"cidade"`
	UF          string `json:"uf"`
	Senha       string `json:"senha"`
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

	f, err := h.Repository.BuscarPorEmailOuCNPJ(h.DB, req.Login)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(f.Senha, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(f.ID, models.PerfilFornecedor, false)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Criar cadastra um novo fornecedor (rota aberta). Cadastro repetido de CNPJ
// dispara o alerta por webhook antes de recusar.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req createFornecedorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if existente, err := h.Repository.BuscarPorCNPJ(h.DB, req.CNPJ); err == nil && existente != nil {
		go notificacao.EnviarAlertaCNPJDuplicado(req.CNPJ)
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

	f := Fornecedor{
		RazaoSocial: req.RazaoSocial,
		CNPJ:        req.CNPJ,
		Email:       req.Email,
		Telefone:    req.Telefone,
		Cidade:      req.Cidade,
		UF:          req.UF,
		Senha:       hash,
	}

	if err := h.Repository.Salvar(h.DB, &f); err != nil {
		http.Error(w, "erro ao salvar fornecedor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(f)
}

// Me retorna o fornecedor autenticado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	f, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "Fornecedor não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(f)
}

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/cliente"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/comentario"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/comissao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/contrato"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/cotacao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/fornecedor"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/proposta"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/utils/db"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/visita"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func env(key, padrao string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return padrao
}

func main() {
	_ = godotenv.Load()

	dbPort, err := strconv.ParseUint(env("DB_PORT", "5432"), 10, 16)
	if err != nil {
		log.Fatal("DB_PORT inválida:", err)
	}
	database, err := db.ConnectDataBase(uint(dbPort), env("DB_HOST", "localhost"), env("DB_NAME", "quotemaster"), os.Getenv("DB_SECRET_ID"))
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&cliente.Cliente{},
		&fornecedor.Fornecedor{},
		&cotacao.Cotacao{},
		&cotacao.ItemCotacao{},
		&cotacao.CotacaoFornecedor{},
		&proposta.Proposta{},
		&visita.Visita{},
		&comentario.Comentario{},
		&contrato.Contrato{},
		&comissao.Comissao{},
		&comissao.Parcela{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Handlers
	clienteHandler := cliente.NewHandler(database)
	fornecedorHandler := fornecedor.NewHandler(database)
	cotacaoHandler := cotacao.NewHandler(database)
	propostaHandler := proposta.NewHandler(database)
	visitaHandler := visita.NewHandler(database)
	comentarioHandler := comentario.NewHandler(database)
	contratoHandler := contrato.NewHandler(database)
	comissaoHandler := comissao.NewHandler(database)

	// Router
	r := mux.NewRouter()

	// Rotas abertas (cadastro e login)
	r.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	r.HandleFunc("/clientes/login", clienteHandler.Login).Methods("POST")
	r.HandleFunc("/fornecedores", fornecedorHandler.Criar).Methods("POST")
	r.HandleFunc("/fornecedores/login", fornecedorHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/clientes/me", clienteHandler.Me).Methods("GET")
	api.HandleFunc("/fornecedores/me", fornecedorHandler.Me).Methods("GET")

	api.HandleFunc("/cotacoes/{id}", cotacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/cotacoes/{id}/comentarios", comentarioHandler.Criar).Methods("POST")
	api.HandleFunc("/cotacoes/{id}/comentarios", comentarioHandler.ListarPorCotacao).Methods("GET")
	api.HandleFunc("/contratos", contratoHandler.Listar).Methods("GET")
	api.HandleFunc("/contratos/{id}", contratoHandler.BuscarPorID).Methods("GET")

	// Rotas do cliente
	clienteAPI := api.NewRoute().Subrouter()
	clienteAPI.Use(auth.RequirePerfil(models.PerfilCliente))
	clienteAPI.HandleFunc("/cotacoes", cotacaoHandler.Criar).Methods("POST")
	clienteAPI.HandleFunc("/cotacoes", cotacaoHandler.Listar).Methods("GET")
	clienteAPI.HandleFunc("/cotacoes/{id}", cotacaoHandler.Deletar).Methods("DELETE")
	clienteAPI.HandleFunc("/cotacoes/{id}/status", cotacaoHandler.AtualizarStatus).Methods("PATCH")
	clienteAPI.HandleFunc("/cotacoes/{id}/propostas", propostaHandler.ListarPorCotacao).Methods("GET")
	clienteAPI.HandleFunc("/propostas/{id}/status", propostaHandler.AtualizarStatus).Methods("PATCH")

	// Rotas do fornecedor
	fornecedorAPI := api.NewRoute().Subrouter()
	fornecedorAPI.Use(auth.RequirePerfil(models.PerfilFornecedor))
	fornecedorAPI.HandleFunc("/fornecedores/me/cotacoes", propostaHandler.ListarCotacoesParaFornecedor).Methods("GET")
	fornecedorAPI.HandleFunc("/fornecedores/me/comissoes", comissaoHandler.ListarMinhas).Methods("GET")
	fornecedorAPI.HandleFunc("/cotacoes/{id}/proposta", propostaHandler.SalvarRascunho).Methods("PUT")
	fornecedorAPI.HandleFunc("/cotacoes/{id}/proposta", propostaHandler.BuscarMinha).Methods("GET")
	fornecedorAPI.HandleFunc("/cotacoes/{id}/proposta/enviar", propostaHandler.Enviar).Methods("POST")
	fornecedorAPI.HandleFunc("/cotacoes/{id}/visitas", visitaHandler.Agendar).Methods("POST")
	fornecedorAPI.HandleFunc("/cotacoes/{id}/visitas", visitaHandler.ListarPorCotacao).Methods("GET")
	fornecedorAPI.HandleFunc("/visitas/{id}/confirmar", visitaHandler.Confirmar).Methods("PATCH")
	fornecedorAPI.HandleFunc("/visitas/{id}/reagendar", visitaHandler.Reagendar).Methods("PATCH")

	// Reconciliações disparadas por cron/admin
	adminAPI := api.NewRoute().Subrouter()
	adminAPI.Use(auth.RequireAdmin)
	adminAPI.HandleFunc("/visitas/verificar-atrasadas", visitaHandler.VerificarAtrasadas).Methods("POST")
	adminAPI.HandleFunc("/propostas/verificar-expiradas", propostaHandler.VerificarExpiradas).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	porta := env("PORT", "8080")
	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, c.Handler(r)))
}

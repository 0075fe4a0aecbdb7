package cotacao

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/auth"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/gorilla/mux"
)

func patchStatus(t *testing.T, h *Handler, id, clienteID uint, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/cotacoes/%d/status", id), strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(id)})
	req = req.WithContext(context.WithValue(req.Context(), auth.CtxUserID, clienteID))
	rec := httptest.NewRecorder()
	h.AtualizarStatus(rec, req)
	return rec
}

func TestAtualizarStatusValidaEnum(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, &Cotacao{Titulo: "Alvo", Status: models.CotacaoRecebida, Escopo: models.EscopoLocal, ClienteID: 1})
	h := NewHandler(db)

	rec := patchStatus(t, h, c.ID, 1, `{"status":"qualquer_coisa"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status fora do enum deveria dar 400, veio %d", rec.Code)
	}

	atual, err := h.Repository.BuscarPorID(db, c.ID)
	if err != nil {
		t.Fatalf("erro ao recarregar cotação: %v", err)
	}
	if atual.Status != models.CotacaoRecebida {
		t.Fatalf("status não podia mudar, veio %q", atual.Status)
	}

	rec = patchStatus(t, h, c.ID, 1, `{"status":"em_analise"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status do enum deveria passar, veio %d: %s", rec.Code, rec.Body.String())
	}
	atual, _ = h.Repository.BuscarPorID(db, c.ID)
	if atual.Status != models.CotacaoEmAnalise {
		t.Fatalf("status esperado em_analise, veio %q", atual.Status)
	}
}

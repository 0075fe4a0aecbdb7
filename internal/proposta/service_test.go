package proposta

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/cotacao"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/visita"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("erro ao abrir sqlite em memória: %v", err)
	}
	if err := db.AutoMigrate(
		&cotacao.Cotacao{},
		&cotacao.ItemCotacao{},
		&cotacao.CotacaoFornecedor{},
		&Proposta{},
		&visita.Visita{},
	); err != nil {
		t.Fatalf("erro no AutoMigrate: %v", err)
	}
	return db
}

var seqCodigo int

func seedCotacao(t *testing.T, db *gorm.DB, status string, exigeVisita bool) *cotacao.Cotacao {
	t.Helper()
	seqCodigo++
	c := &cotacao.Cotacao{
		Codigo:      fmt.Sprintf("COT-%04d", seqCodigo),
		Titulo:      "Reforma do refeitório",
		Status:      status,
		Escopo:      models.EscopoGlobal,
		ExigeVisita: exigeVisita,
		ClienteID:   1,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("erro ao criar cotação: %v", err)
	}
	return c
}

func itensValidos() []ItemProposta {
	return []ItemProposta{
		{Produto: "Tinta acrílica 18L", Quantidade: 2, PrecoUnitario: 10},
		{Produto: "Massa corrida 25kg", Quantidade: 3, PrecoUnitario: 10},
	}
}

func contarPropostas(t *testing.T, db *gorm.DB, cotacaoID uint) int64 {
	t.Helper()
	var total int64
	if err := db.Model(&Proposta{}).Where("cotacao_id = ?", cotacaoID).Count(&total).Error; err != nil {
		t.Fatalf("erro ao contar propostas: %v", err)
	}
	return total
}

func TestSalvarRascunhoIdempotente(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	p1, err := s.SalvarRascunho(db, c.ID, 7, itensValidos(), Termos{PrazoEntregaDias: 10})
	if err != nil {
		t.Fatalf("primeiro rascunho falhou: %v", err)
	}
	if p1.Status != models.PropostaRascunho {
		t.Fatalf("status esperado %q, veio %q", models.PropostaRascunho, p1.Status)
	}

	p2, err := s.SalvarRascunho(db, c.ID, 7, itensValidos(), Termos{PrazoEntregaDias: 15})
	if err != nil {
		t.Fatalf("segundo rascunho falhou: %v", err)
	}
	if p2.ID != p1.ID {
		t.Fatalf("regravação deveria manter o id %d, veio %d", p1.ID, p2.ID)
	}
	if p2.PrazoEntregaDias != 15 {
		t.Fatalf("termos deveriam ter sido atualizados, prazo veio %d", p2.PrazoEntregaDias)
	}
	if total := contarPropostas(t, db, c.ID); total != 1 {
		t.Fatalf("esperava 1 linha de proposta, tem %d", total)
	}
}

func TestSalvarRascunhoSemItens(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	if _, err := s.SalvarRascunho(db, c.ID, 7, nil, Termos{}); !errors.Is(err, ErrSemItens) {
		t.Fatalf("esperava ErrSemItens, veio %v", err)
	}
}

func TestSalvarRascunhoAceitaItensInvalidos(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	// rascunho não valida item a item: só o envio faz isso
	itens := []ItemProposta{{Produto: "", Quantidade: 0, PrecoUnitario: 0}}
	p, err := s.SalvarRascunho(db, c.ID, 7, itens, Termos{})
	if err != nil {
		t.Fatalf("rascunho com item incompleto deveria ser aceito: %v", err)
	}
	if p.Status != models.PropostaRascunho {
		t.Fatalf("status esperado rascunho, veio %q", p.Status)
	}
}

func TestEnviarCotacaoBloqueada(t *testing.T) {
	db := setupTestDB(t)
	s := NewService()

	bloqueados := []string{
		models.CotacaoAprovada,
		models.CotacaoPaga,
		models.CotacaoEmEntrega,
		"em_aprovacao",
		"finalizada",
	}
	for _, status := range bloqueados {
		c := seedCotacao(t, db, status, false)
		if _, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{}); !errors.Is(err, ErrCotacaoBloqueada) {
			t.Fatalf("status %q: esperava ErrCotacaoBloqueada, veio %v", status, err)
		}
		if total := contarPropostas(t, db, c.ID); total != 0 {
			t.Fatalf("status %q: envio bloqueado não pode gravar proposta", status)
		}
	}
}

func TestEnviarSemItens(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	if _, err := s.Enviar(db, c.ID, 7, []ItemProposta{}, Termos{}); !errors.Is(err, ErrSemItens) {
		t.Fatalf("esperava ErrSemItens, veio %v", err)
	}
}

func TestEnviarNenhumItemValido(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	itens := []ItemProposta{
		{Produto: "   ", Quantidade: 2, PrecoUnitario: 10},
		{Produto: "Cimento", Quantidade: 0, PrecoUnitario: 10},
		{Produto: "Areia", Quantidade: 1, PrecoUnitario: 0},
	}
	if _, err := s.Enviar(db, c.ID, 7, itens, Termos{}); !errors.Is(err, ErrNenhumItemValido) {
		t.Fatalf("esperava ErrNenhumItemValido, veio %v", err)
	}
}

func TestEnviarBastaUmItemValido(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	// um item bom basta, mesmo com linhas incompletas na lista
	itens := []ItemProposta{
		{Produto: "", Quantidade: 0, PrecoUnitario: 0},
		{Produto: "Cimento CP-II 50kg", Quantidade: 5, PrecoUnitario: 40},
	}
	res, err := s.Enviar(db, c.ID, 7, itens, Termos{})
	if err != nil {
		t.Fatalf("envio com um item válido deveria passar: %v", err)
	}
	if res.Proposta.Status != models.PropostaEnviada {
		t.Fatalf("status esperado enviada, veio %q", res.Proposta.Status)
	}
	if res.Proposta.EnviadaEm == nil {
		t.Fatal("EnviadaEm deveria ter sido preenchida")
	}
}

func TestEnviarExigeVisitaConfirmada(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, true)
	s := NewService()

	if _, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{}); !errors.Is(err, ErrVisitaNaoConfirmada) {
		t.Fatalf("sem visita: esperava ErrVisitaNaoConfirmada, veio %v", err)
	}

	// visita apenas agendada ainda não libera
	v := &visita.Visita{CotacaoID: c.ID, FornecedorID: 7, DataAgendada: time.Now(), Status: models.VisitaAgendada}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("erro ao criar visita: %v", err)
	}
	if _, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{}); !errors.Is(err, ErrVisitaNaoConfirmada) {
		t.Fatalf("visita agendada: esperava ErrVisitaNaoConfirmada, veio %v", err)
	}

	if ok, err := s.Visitas.Confirmar(db, v.ID, time.Now()); err != nil || !ok {
		t.Fatalf("confirmação da visita falhou: ok=%v err=%v", ok, err)
	}
	if _, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{}); err != nil {
		t.Fatalf("visita confirmada deveria liberar o envio: %v", err)
	}
}

func TestEnviarCalculaValorTotalSemFrete(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	res, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{Frete: 100})
	if err != nil {
		t.Fatalf("envio falhou: %v", err)
	}
	// 2×10 + 3×10 = 50; frete fica registrado à parte
	if res.Proposta.ValorTotal != 50 {
		t.Fatalf("ValorTotal esperado 50, veio %v", res.Proposta.ValorTotal)
	}
	if res.Proposta.Frete != 100 {
		t.Fatalf("Frete esperado 100, veio %v", res.Proposta.Frete)
	}
	for _, it := range res.Proposta.Itens {
		if it.TotalLinha != it.Quantidade*it.PrecoUnitario {
			t.Fatalf("TotalLinha inconsistente para %q: %v", it.Produto, it.TotalLinha)
		}
	}
}

func TestEnviarAvancaCotacaoParaRecebendo(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	res, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{})
	if err != nil {
		t.Fatalf("envio falhou: %v", err)
	}
	if res.TransicaoFalhou {
		t.Fatal("transição não deveria ter falhado")
	}

	atual, err := s.Cotacoes.BuscarPorID(db, c.ID)
	if err != nil {
		t.Fatalf("erro ao recarregar cotação: %v", err)
	}
	if atual.Status != models.CotacaoRecebendo {
		t.Fatalf("cotação deveria estar em recebendo, veio %q", atual.Status)
	}

	// segundo fornecedor: cotação já em recebendo, avanço é no-op sem erro
	res2, err := s.Enviar(db, c.ID, 8, itensValidos(), Termos{})
	if err != nil {
		t.Fatalf("segundo envio falhou: %v", err)
	}
	if res2.TransicaoFalhou {
		t.Fatal("no-op de transição não é falha")
	}
	atual, _ = s.Cotacoes.BuscarPorID(db, c.ID)
	if atual.Status != models.CotacaoRecebendo {
		t.Fatalf("cotação deveria seguir em recebendo, veio %q", atual.Status)
	}
}

func TestEnviarRecusaReenvio(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	if _, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{}); err != nil {
		t.Fatalf("primeiro envio falhou: %v", err)
	}
	if _, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{}); !errors.Is(err, ErrPropostaJaEnviada) {
		t.Fatalf("esperava ErrPropostaJaEnviada, veio %v", err)
	}
	if total := contarPropostas(t, db, c.ID); total != 1 {
		t.Fatalf("reenvio recusado não pode gerar segunda linha, tem %d", total)
	}
}

func TestEnviarAposRascunhoMantemMesmaLinha(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	rascunho, err := s.SalvarRascunho(db, c.ID, 7, itensValidos(), Termos{})
	if err != nil {
		t.Fatalf("rascunho falhou: %v", err)
	}

	res, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{})
	if err != nil {
		t.Fatalf("envio falhou: %v", err)
	}
	if res.Proposta.ID != rascunho.ID {
		t.Fatalf("envio deveria reaproveitar a linha %d, veio %d", rascunho.ID, res.Proposta.ID)
	}
	if total := contarPropostas(t, db, c.ID); total != 1 {
		t.Fatalf("esperava 1 linha, tem %d", total)
	}
}

func TestSalvarRascunhoAposEnvioPreservaStatus(t *testing.T) {
	db := setupTestDB(t)
	c := seedCotacao(t, db, models.CotacaoEnviada, false)
	s := NewService()

	res, err := s.Enviar(db, c.ID, 7, itensValidos(), Termos{})
	if err != nil {
		t.Fatalf("envio falhou: %v", err)
	}

	p, err := s.SalvarRascunho(db, c.ID, 7, itensValidos(), Termos{Observacoes: "ajuste"})
	if err != nil {
		t.Fatalf("regravação falhou: %v", err)
	}
	if p.Status != models.PropostaEnviada {
		t.Fatalf("regravar não pode rebaixar o status, veio %q", p.Status)
	}
	if p.EnviadaEm == nil {
		t.Fatal("EnviadaEm deveria ter sido preservada")
	}
	if !p.EnviadaEm.Equal(*res.Proposta.EnviadaEm) {
		t.Fatalf("EnviadaEm mudou: %v != %v", p.EnviadaEm, res.Proposta.EnviadaEm)
	}
}

func TestMarcarExpiradas(t *testing.T) {
	db := setupTestDB(t)
	s := NewService()

	vencido := time.Now().Add(-48 * time.Hour)
	futuro := time.Now().Add(48 * time.Hour)

	cVencida := seedCotacao(t, db, models.CotacaoRecebendo, false)
	cVencida.Prazo = &vencido
	db.Save(cVencida)
	cAberta := seedCotacao(t, db, models.CotacaoRecebendo, false)
	cAberta.Prazo = &futuro
	db.Save(cAberta)

	if _, err := s.Enviar(db, cVencida.ID, 7, itensValidos(), Termos{}); err != nil {
		t.Fatalf("envio falhou: %v", err)
	}
	if _, err := s.Enviar(db, cAberta.ID, 7, itensValidos(), Termos{}); err != nil {
		t.Fatalf("envio falhou: %v", err)
	}

	n, err := s.Propostas.MarcarExpiradas(db, time.Now())
	if err != nil {
		t.Fatalf("MarcarExpiradas falhou: %v", err)
	}
	if n != 1 {
		t.Fatalf("esperava 1 proposta expirada, veio %d", n)
	}

	pVencida, _ := s.Propostas.BuscarPorCotacaoEFornecedor(db, cVencida.ID, 7)
	if pVencida.Status != models.PropostaExpirada {
		t.Fatalf("proposta da cotação vencida deveria estar expirada, veio %q", pVencida.Status)
	}
	pAberta, _ := s.Propostas.BuscarPorCotacaoEFornecedor(db, cAberta.ID, 7)
	if pAberta.Status != models.PropostaEnviada {
		t.Fatalf("proposta da cotação aberta não pode expirar, veio %q", pAberta.Status)
	}

	// idempotente
	n, err = s.Propostas.MarcarExpiradas(db, time.Now())
	if err != nil || n != 0 {
		t.Fatalf("segunda rodada deveria ser no-op: n=%d err=%v", n, err)
	}
}

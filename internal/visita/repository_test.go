package visita

import (
	"fmt"
	"testing"
	"time"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
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
	if err := db.AutoMigrate(&Visita{}); err != nil {
		t.Fatalf("erro no AutoMigrate: %v", err)
	}
	return db
}

func seedVisita(t *testing.T, db *gorm.DB, status string, dataAgendada time.Time) *Visita {
	t.Helper()
	v := &Visita{
		CotacaoID:    1,
		FornecedorID: 7,
		DataAgendada: dataAgendada,
		Status:       status,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("erro ao criar visita: %v", err)
	}
	return v
}

func TestConfirmarSoDeAgendada(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository()

	v := seedVisita(t, db, models.VisitaAgendada, time.Now().Add(24*time.Hour))
	quando := time.Now()

	ok, err := repo.Confirmar(db, v.ID, quando)
	if err != nil || !ok {
		t.Fatalf("confirmação de agendada deveria passar: ok=%v err=%v", ok, err)
	}

	atual, _ := repo.BuscarPorID(db, v.ID)
	if atual.Status != models.VisitaConfirmada {
		t.Fatalf("status esperado confirmada, veio %q", atual.Status)
	}
	if atual.ConfirmadaEm == nil {
		t.Fatal("ConfirmadaEm deveria ter sido preenchida")
	}

	// confirmar de novo é no-op
	ok, err = repo.Confirmar(db, v.ID, time.Now())
	if err != nil || ok {
		t.Fatalf("segunda confirmação deveria ser no-op: ok=%v err=%v", ok, err)
	}

	// atrasada não confirma direto, precisa reagendar antes
	atrasada := seedVisita(t, db, models.VisitaAtrasada, time.Now().Add(-24*time.Hour))
	ok, err = repo.Confirmar(db, atrasada.ID, time.Now())
	if err != nil || ok {
		t.Fatalf("atrasada não pode confirmar direto: ok=%v err=%v", ok, err)
	}
}

func TestReagendarReabreAtrasada(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository()

	atrasada := seedVisita(t, db, models.VisitaAtrasada, time.Now().Add(-24*time.Hour))
	novaData := time.Now().Add(72 * time.Hour)

	ok, err := repo.Reagendar(db, atrasada.ID, novaData)
	if err != nil || !ok {
		t.Fatalf("reagendamento de atrasada deveria passar: ok=%v err=%v", ok, err)
	}
	atual, _ := repo.BuscarPorID(db, atrasada.ID)
	if atual.Status != models.VisitaAgendada {
		t.Fatalf("status esperado agendada, veio %q", atual.Status)
	}
	if !atual.DataAgendada.Equal(novaData) && atual.DataAgendada.Unix() != novaData.Unix() {
		t.Fatalf("data agendada não foi atualizada: %v", atual.DataAgendada)
	}

	// agendada também pode ser remarcada
	agendada := seedVisita(t, db, models.VisitaAgendada, time.Now().Add(24*time.Hour))
	ok, err = repo.Reagendar(db, agendada.ID, novaData)
	if err != nil || !ok {
		t.Fatalf("remarcação de agendada deveria passar: ok=%v err=%v", ok, err)
	}

	// confirmada é definitiva
	confirmada := seedVisita(t, db, models.VisitaConfirmada, time.Now())
	ok, err = repo.Reagendar(db, confirmada.ID, novaData)
	if err != nil || ok {
		t.Fatalf("confirmada não pode ser reagendada: ok=%v err=%v", ok, err)
	}
}

func TestMarcarAtrasadas(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository()

	vencida := seedVisita(t, db, models.VisitaAgendada, time.Now().Add(-2*time.Hour))
	futura := seedVisita(t, db, models.VisitaAgendada, time.Now().Add(2*time.Hour))
	confirmada := seedVisita(t, db, models.VisitaConfirmada, time.Now().Add(-2*time.Hour))

	n, err := repo.MarcarAtrasadas(db, time.Now())
	if err != nil {
		t.Fatalf("MarcarAtrasadas falhou: %v", err)
	}
	if n != 1 {
		t.Fatalf("esperava 1 visita atrasada, veio %d", n)
	}

	atual, _ := repo.BuscarPorID(db, vencida.ID)
	if atual.Status != models.VisitaAtrasada {
		t.Fatalf("visita vencida deveria estar atrasada, veio %q", atual.Status)
	}
	atual, _ = repo.BuscarPorID(db, futura.ID)
	if atual.Status != models.VisitaAgendada {
		t.Fatalf("visita futura não pode atrasar, veio %q", atual.Status)
	}
	atual, _ = repo.BuscarPorID(db, confirmada.ID)
	if atual.Status != models.VisitaConfirmada {
		t.Fatalf("visita confirmada não pode atrasar, veio %q", atual.Status)
	}

	// idempotente
	n, err = repo.MarcarAtrasadas(db, time.Now())
	if err != nil || n != 0 {
		t.Fatalf("segunda rodada deveria ser no-op: n=%d err=%v", n, err)
	}
}

func TestExisteConfirmada(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository()

	ok, err := repo.ExisteConfirmada(db, 1, 7)
	if err != nil || ok {
		t.Fatalf("sem visitas não há confirmação: ok=%v err=%v", ok, err)
	}

	// atrasada não conta
	seedVisita(t, db, models.VisitaAtrasada, time.Now().Add(-24*time.Hour))
	ok, _ = repo.ExisteConfirmada(db, 1, 7)
	if ok {
		t.Fatal("visita atrasada não libera")
	}

	// qualquer linha confirmada do par libera
	seedVisita(t, db, models.VisitaConfirmada, time.Now())
	ok, err = repo.ExisteConfirmada(db, 1, 7)
	if err != nil || !ok {
		t.Fatalf("visita confirmada deveria liberar: ok=%v err=%v", ok, err)
	}

	// par diferente não enxerga a confirmação
	ok, _ = repo.ExisteConfirmada(db, 2, 7)
	if ok {
		t.Fatal("confirmação não vaza para outra cotação")
	}
	ok, _ = repo.ExisteConfirmada(db, 1, 8)
	if ok {
		t.Fatal("confirmação não vaza para outro fornecedor")
	}
}

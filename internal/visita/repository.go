package visita

import (
	"time"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, v *Visita) error
	BuscarPorID(db *gorm.DB, id uint) (*Visita, error)
	ListarPorCotacaoEFornecedor(db *gorm.DB, cotacaoID, fornecedorID uint) ([]Visita, error)
	ExisteConfirmada(db *gorm.DB, cotacaoID, fornecedorID uint) (bool, error)
	Confirmar(db *gorm.DB, id uint, quando time.Time) (bool, error)
	Reagendar(db *gorm.DB, id uint, novaData time.Time) (bool, error)
	MarcarAtrasadas(db *gorm.DB, referencia time.Time) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, v *Visita) error {
	return db.Create(v).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Visita, error) {
	var v Visita
	if err := db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repositoryImpl) ListarPorCotacaoEFornecedor(db *gorm.DB, cotacaoID, fornecedorID uint) ([]Visita, error) {
	var list []Visita
	err := db.
		Where("cotacao_id = ? AND fornecedor_id = ?", cotacaoID, fornecedorID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ExisteConfirmada é a consulta usada pelo gate de envio: qualquer visita
// confirmada do par libera, não necessariamente a mais recente.
func (r *repositoryImpl) ExisteConfirmada(db *gorm.DB, cotacaoID, fornecedorID uint) (bool, error) {
	var total int64
	err := db.Model(&Visita{}).
		Where("cotacao_id = ? AND fornecedor_id = ? AND status = ?",
			cotacaoID, fornecedorID, models.VisitaConfirmada).
		Count(&total).Error
	return total > 0, err
}

// Confirmar só transiciona agendada -> confirmada.
func (r *repositoryImpl) Confirmar(db *gorm.DB, id uint, quando time.Time) (bool, error) {
	tx := db.Model(&Visita{}).
		Where("id = ? AND status = ?", id, models.VisitaAgendada).
		Updates(map[string]interface{}{
			"status":        models.VisitaConfirmada,
			"confirmada_em": quando,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Reagendar reabre uma visita atrasada (ou remarca uma ainda agendada).
func (r *repositoryImpl) Reagendar(db *gorm.DB, id uint, novaData time.Time) (bool, error) {
	tx := db.Model(&Visita{}).
		Where("id = ? AND status IN ?", id, []string{models.VisitaAgendada, models.VisitaAtrasada}).
		Updates(map[string]interface{}{
			"status":        models.VisitaAgendada,
			"data_agendada": novaData,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarcarAtrasadas é a reconciliação disparada por cron/admin: toda visita
// agendada com data anterior à referência vira atrasada. Idempotente.
func (r *repositoryImpl) MarcarAtrasadas(db *gorm.DB, referencia time.Time) (int64, error) {
	tx := db.Model(&Visita{}).
		Where("status = ? AND data_agendada < ?", models.VisitaAgendada, referencia).
		Update("status", models.VisitaAtrasada)
	return tx.RowsAffected, tx.Error
}

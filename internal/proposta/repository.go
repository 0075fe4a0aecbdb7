package proposta

import (
	"errors"
	"time"

	"github.com/danilocontato-coder/quotemasterpro-sub004/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	BuscarPorID(db *gorm.DB, id uint) (*Proposta, error)
	BuscarPorCotacaoEFornecedor(db *gorm.DB, cotacaoID, fornecedorID uint) (*Proposta, error)
	Upsert(db *gorm.DB, p *Proposta) error
	ListarPorCotacao(db *gorm.DB, cotacaoID uint) ([]Proposta, error)
	MapearPorFornecedor(db *gorm.DB, fornecedorID uint) (map[uint]*Proposta, error)
	AtualizarStatusSeEnviada(db *gorm.DB, id uint, status string) (bool, error)
	MarcarExpiradas(db *gorm.DB, referencia time.Time) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Proposta, error) {
	var p Proposta
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// BuscarPorCotacaoEFornecedor devolve (nil, nil) quando não há proposta:
// ausência é um caso normal do fluxo, não um erro.
func (r *repositoryImpl) BuscarPorCotacaoEFornecedor(db *gorm.DB, cotacaoID, fornecedorID uint) (*Proposta, error) {
	var p Proposta
	err := db.Where("cotacao_id = ? AND fornecedor_id = ?", cotacaoID, fornecedorID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Upsert grava a proposta com ON CONFLICT no índice único
// (cotacao_id, fornecedor_id): inserir e atualizar são a mesma operação
// atômica, e o id da linha existente é preservado pelo banco.
func (r *repositoryImpl) Upsert(db *gorm.DB, p *Proposta) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cotacao_id"}, {Name: "fornecedor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"itens", "valor_total", "prazo_entrega_dias", "condicoes_pagamento",
			"frete", "garantia_meses", "observacoes", "status", "enviada_em",
			"updated_at",
		}),
	}).Create(p).Error
}

func (r *repositoryImpl) ListarPorCotacao(db *gorm.DB, cotacaoID uint) ([]Proposta, error) {
	var list []Proposta
	err := db.
		Where("cotacao_id = ?", cotacaoID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// MapearPorFornecedor indexa por cotação as propostas de um fornecedor,
// para a listagem com status derivado.
func (r *repositoryImpl) MapearPorFornecedor(db *gorm.DB, fornecedorID uint) (map[uint]*Proposta, error) {
	var list []Proposta
	if err := db.Where("fornecedor_id = ?", fornecedorID).Find(&list).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]*Proposta, len(list))
	for i := range list {
		m[list[i].CotacaoID] = &list[i]
	}
	return m, nil
}

// AtualizarStatusSeEnviada aplica a decisão do cliente (aprovar/rejeitar)
// apenas sobre propostas ainda em "enviada".
func (r *repositoryImpl) AtualizarStatusSeEnviada(db *gorm.DB, id uint, status string) (bool, error) {
	tx := db.Model(&Proposta{}).
		Where("id = ? AND status = ?", id, models.PropostaEnviada).
		Update("status", status)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarcarExpiradas é a reconciliação de expiração: propostas enviadas cuja
// cotação já passou do prazo viram "expirada". Idempotente.
func (r *repositoryImpl) MarcarExpiradas(db *gorm.DB, referencia time.Time) (int64, error) {
	tx := db.Model(&Proposta{}).
		Where("status = ? AND cotacao_id IN (SELECT id FROM cotacoes WHERE prazo IS NOT NULL AND prazo < ?)",
			models.PropostaEnviada, referencia).
		Update("status", models.PropostaExpirada)
	return tx.RowsAffected, tx.Error
}

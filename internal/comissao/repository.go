// internal/comissao/repository.go
package comissao

import (
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Comissao
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// Create insere a comissão junto com as parcelas
func (r *Repository) Create(db *gorm.DB, c *Comissao) error {
	return db.Create(c).Error
}

// FindByID retorna uma comissão pelo ID, com parcelas
func (r *Repository) FindByID(db *gorm.DB, id uint) (*Comissao, error) {
	var c Comissao
	if err := db.Preload("Parcelas").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByProposta retorna a comissão de uma proposta aprovada
func (r *Repository) FindByProposta(db *gorm.DB, propostaID uint) (*Comissao, error) {
	var c Comissao
	err := db.Preload("Parcelas").Where("proposta_id = ?", propostaID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByFornecedor busca todas as comissões de um fornecedor,
// pré-carregando as parcelas de cada uma.
func (r *Repository) ListByFornecedor(db *gorm.DB, fornecedorID uint) ([]Comissao, error) {
	var list []Comissao
	err := db.
		Preload("Parcelas").
		Where("fornecedor_id = ?", fornecedorID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// UpdateStatus atualiza apenas o status de uma comissão.
func (r *Repository) UpdateStatus(db *gorm.DB, id uint, status string) error {
	return db.Model(&Comissao{}).Where("id = ?", id).Update("status", status).Error
}

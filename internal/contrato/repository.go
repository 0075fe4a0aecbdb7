package contrato

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Contrato) error
	BuscarPorID(db *gorm.DB, id uint) (*Contrato, error)
	ListarPorFornecedor(db *gorm.DB, fornecedorID uint) ([]Contrato, error)
	ListarPorCliente(db *gorm.DB, clienteID uint) ([]Contrato, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contrato, error) {
	var c Contrato
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarPorFornecedor(db *gorm.DB, fornecedorID uint) ([]Contrato, error) {
	var list []Contrato
	err := db.Where("fornecedor_id = ?", fornecedorID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Contrato, error) {
	var list []Contrato
	err := db.Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&list).Error
	return list, err
}

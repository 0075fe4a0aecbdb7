package cliente

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Cliente) error
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	BuscarPorEmailOuCNPJ(db *gorm.DB, login string) (*Cliente, error)
	BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Cliente, error)
	Atualizar(db *gorm.DB, c *Cliente) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cliente) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) BuscarPorEmailOuCNPJ(db *gorm.DB, login string) (*Cliente, error) {
	var c Cliente
	err := db.Where("email = ? OR cnpj = ?", login, login).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Cliente, error) {
	var c Cliente
	err := db.Where("cnpj = ?", cnpj).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

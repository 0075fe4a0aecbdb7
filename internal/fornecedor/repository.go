package fornecedor

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, f *Fornecedor) error
	BuscarPorID(db *gorm.DB, id uint) (*Fornecedor, error)
	BuscarPorEmailOuCNPJ(db *gorm.DB, login string) (*Fornecedor, error)
	BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Fornecedor, error)
	Atualizar(db *gorm.DB, f *Fornecedor) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, f *Fornecedor) error {
	return db.Create(f).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Fornecedor, error) {
	var f Fornecedor
	if err := db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repositoryImpl) BuscarPorEmailOuCNPJ(db *gorm.DB, login string) (*Fornecedor, error) {
	var f Fornecedor
	err := db.Where("email = ? OR cnpj = ?", login, login).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repositoryImpl) BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Fornecedor, error) {
	var f Fornecedor
	err := db.Where("cnpj = ?", cnpj).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, f *Fornecedor) error {
	return db.Save(f).Error
}

package comentario

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Comentario) error
	ListarPorCotacao(db *gorm.DB, cotacaoID uint) ([]Comentario, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Comentario) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarPorCotacao(db *gorm.DB, cotacaoID uint) ([]Comentario, error) {
	var list []Comentario
	err := db.Where("cotacao_id = ?", cotacaoID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Comentario{}, id).Error
}

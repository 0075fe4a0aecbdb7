package comentario

import "gorm.io/gorm"

type Comentario struct {
	gorm.Model
	Texto       string `json:"texto"`
	CotacaoID   uint   `gorm:"not null;index" json:"cotacaoId"`
	AutorID     uint   `json:"autorId"`
	AutorPerfil string `gorm:"size:20" json:"autorPerfil"`
}

func (Comentario) TableName() string { return "comentarios" }

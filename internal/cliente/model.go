package cliente

import "gorm.io/gorm"

// Cliente é o tenant que abre cotações na plataforma.
type Cliente struct {
	gorm.Model
	Nome     string `json:"nome"`
	CNPJ     string `json:"cnpj" gorm:"unique"`
	Email    string `json:"email" gorm:"unique"`
	Telefone string `json:"telefone"`
	Logo     string `json:"logo"`
	Senha    string `json:"-"`
	IsAdmin  bool   `gorm:"default:false" json:"isAdmin"`
}

func (Cliente) TableName() string { return "clientes" }

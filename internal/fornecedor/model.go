package fornecedor

import "gorm.io/gorm"

// Fornecedor responde cotações com propostas.
type Fornecedor struct {
	gorm.Model
	RazaoSocial string `json:"razaoSocial"`
	CNPJ        string `json:"cnpj" gorm:"unique"`
	Email       string `json:"email" gorm:"unique"`
	Telefone    string `json:"telefone"`
	Cidade      string `json:"cidade"`
	UF          string `gorm:"size:2" json:"uf"`
	Senha       string `json:"-"`
}

func (Fornecedor) TableName() string { return "fornecedores" }

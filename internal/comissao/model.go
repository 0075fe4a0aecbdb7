package comissao

import (
	"time"

	"gorm.io/gorm"
)

// Comissao registra o split da plataforma sobre uma proposta aprovada:
// ValorPlataforma + ValorFornecedor == valor aprovado.
type Comissao struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	PropostaID   uint    `gorm:"not null;uniqueIndex" json:"propostaId"`
	FornecedorID uint    `gorm:"not null;index" json:"fornecedorId"`
	Percentual   float64 `gorm:"not null;default:0" json:"percentual"`

	ValorPlataforma float64 `gorm:"not null;default:0" json:"valorPlataforma"`
	ValorFornecedor float64 `gorm:"not null;default:0" json:"valorFornecedor"`

	Status      string `gorm:"size:50;not null;default:'pendente';index" json:"status"`
	QtdParcelas int    `gorm:"not null;default:1" json:"qtdParcelas"`

	Parcelas []Parcela `gorm:"foreignKey:ComissaoID;constraint:OnDelete:CASCADE" json:"parcelas"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Comissao) TableName() string { return "comissoes" }

// Parcela é uma parcela do repasse ao fornecedor.
type Parcela struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ComissaoID     uint       `gorm:"not null;index" json:"comissaoId"`
	Valor          float64    `gorm:"not null;default:0" json:"valor"`
	DataVencimento time.Time  `gorm:"not null" json:"dataVencimento"`
	Status         string     `gorm:"size:50;not null;default:'pendente';index" json:"status"`
	DataPagamento  *time.Time `json:"dataPagamento,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Parcela) TableName() string { return "parcelas_comissao" }

package contrato

import (
	"time"

	"gorm.io/gorm"
)

// Contrato é gerado quando o cliente aprova uma proposta.
type Contrato struct {
	gorm.Model

	CotacaoID    uint `gorm:"not null;index" json:"cotacaoId"`
	PropostaID   uint `gorm:"not null;index" json:"propostaId"`
	FornecedorID uint `gorm:"not null;index" json:"fornecedorId"`
	ClienteID    uint `gorm:"not null;index" json:"clienteId"`

	Valor          float64    `gorm:"not null" json:"valor"`
	Status         string     `gorm:"size:50;not null;default:'ativo'" json:"status"`
	URL            string     `json:"url"` // link do documento assinado, quando houver
	DataAssinatura *time.Time `json:"dataAssinatura,omitempty"`
}

func (Contrato) TableName() string { return "contratos" }

package cotacao

import (
	"time"

	"gorm.io/gorm"
)

// Cotacao representa um pedido de cotação aberto por um cliente
type Cotacao struct {
	ID        uint           `gorm:"primaryKey" json:"cotacaoId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Codigo    string     `gorm:"size:20;uniqueIndex:idx_cliente_codigo,priority:2" json:"codigo"`
	Titulo    string     `json:"titulo"`
	Descricao string     `json:"descricao"`
	Prazo     *time.Time `json:"prazo"`
	Total     float64    `gorm:"not null;default:0" json:"total"`
	Status    string     `gorm:"size:50;not null;default:'rascunho';index" json:"status"`

	// Escopo de fornecedores: "local" | "global" | "todas".
	// FornecedorID só é preenchido em escopo local com alvo direto.
	Escopo       string `gorm:"size:20;not null;default:'local'" json:"escopo"`
	FornecedorID *uint  `gorm:"index" json:"fornecedorId,omitempty"`

	ExigeVisita bool       `gorm:"not null;default:false" json:"exigeVisita"`
	PrazoVisita *time.Time `json:"prazoVisita,omitempty"`

	ClienteID uint `gorm:"not null;uniqueIndex:idx_cliente_codigo,priority:1" json:"clienteId"`

	Itens        []ItemCotacao       `gorm:"foreignKey:CotacaoID;constraint:OnDelete:CASCADE" json:"itens"`
	Fornecedores []CotacaoFornecedor `gorm:"foreignKey:CotacaoID;constraint:OnDelete:CASCADE" json:"fornecedores"`
}

func (Cotacao) TableName() string { return "cotacoes" }

// ItemCotacao é uma linha pedida; imutável depois que a cotação sai de rascunho.
type ItemCotacao struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	CotacaoID       uint    `gorm:"not null;index" json:"cotacaoId"`
	Produto         string  `gorm:"size:255;not null" json:"produto"`
	Quantidade      float64 `gorm:"not null;default:0" json:"quantidade"`
	PrecoReferencia float64 `gorm:"not null;default:0" json:"precoReferencia"`
}

func (ItemCotacao) TableName() string { return "itens_cotacao" }

// CotacaoFornecedor registra a atribuição explícita de um fornecedor à cotação.
type CotacaoFornecedor struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	CotacaoID    uint `gorm:"not null;uniqueIndex:idx_cotacao_fornecedor" json:"cotacaoId"`
	FornecedorID uint `gorm:"not null;uniqueIndex:idx_cotacao_fornecedor" json:"fornecedorId"`
}

func (CotacaoFornecedor) TableName() string { return "cotacoes_fornecedores" }

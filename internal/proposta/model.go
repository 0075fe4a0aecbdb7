package proposta

import (
	"time"
)

// ItemProposta é uma linha precificada; a lista inteira vive em JSONB na
// própria proposta (uma proposta por par cotação/fornecedor, sem tabela filha).
type ItemProposta struct {
	Produto       string  `json:"produto"`
	Quantidade    float64 `json:"quantidade"`
	PrecoUnitario float64 `json:"precoUnitario"`
	TotalLinha    float64 `json:"totalLinha"`
}

// Termos comerciais que acompanham a proposta. Frete fica registrado à parte
// e nunca entra no ValorTotal.
type Termos struct {
	PrazoEntregaDias   int     `json:"prazoEntregaDias"`
	CondicoesPagamento string  `json:"condicoesPagamento"`
	Frete              float64 `json:"frete"`
	GarantiaMeses      int     `json:"garantiaMeses"`
	Observacoes        string  `json:"observacoes"`
}

// Proposta é a resposta de um fornecedor a uma cotação. O índice único em
// (cotacao_id, fornecedor_id) garante no banco a regra de uma proposta por
// par; a gravação é sempre upsert-on-conflict, nunca find-then-insert cego.
// Propostas não são excluídas (nem soft delete) enquanto a cotação existir.
type Proposta struct {
	ID        uint      `gorm:"primaryKey" json:"propostaId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CotacaoID    uint `gorm:"not null;uniqueIndex:idx_proposta_cotacao_fornecedor" json:"cotacaoId"`
	FornecedorID uint `gorm:"not null;uniqueIndex:idx_proposta_cotacao_fornecedor" json:"fornecedorId"`

	Itens []ItemProposta `gorm:"type:jsonb;serializer:json" json:"itens"`

	// Soma de quantidade × preço unitário de todos os itens; frete à parte.
	ValorTotal float64 `gorm:"not null;default:0" json:"valorTotal"`

	PrazoEntregaDias   int     `json:"prazoEntregaDias"`
	CondicoesPagamento string  `json:"condicoesPagamento"`
	Frete              float64 `gorm:"not null;default:0" json:"frete"`
	GarantiaMeses      int     `json:"garantiaMeses"`
	Observacoes        string  `json:"observacoes"`

	Status    string     `gorm:"size:50;not null;default:'rascunho';index" json:"status"`
	EnviadaEm *time.Time `json:"enviadaEm,omitempty"`
}

func (Proposta) TableName() string { return "propostas" }

package visita

import (
	"time"

	"gorm.io/gorm"
)

// Visita é a visita técnica de um fornecedor a uma cotação. Reagendamentos
// podem gerar novas linhas; o que libera o envio da proposta é existir ao
// menos uma linha confirmada para o par (cotação, fornecedor).
type Visita struct {
	ID        uint           `gorm:"primaryKey" json:"visitaId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	CotacaoID    uint `gorm:"not null;index:idx_visita_cotacao_fornecedor" json:"cotacaoId"`
	FornecedorID uint `gorm:"not null;index:idx_visita_cotacao_fornecedor" json:"fornecedorId"`

	DataAgendada time.Time  `gorm:"not null" json:"dataAgendada"`
	Status       string     `gorm:"size:50;not null;default:'agendada';index" json:"status"`
	ConfirmadaEm *time.Time `json:"confirmadaEm,omitempty"`
	Observacoes  string     `json:"observacoes"`
}

func (Visita) TableName() string { return "visitas" }

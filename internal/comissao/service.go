package comissao

import (
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// PercentualPadrao é usado quando COMISSAO_PERCENTUAL não está configurada.
const PercentualPadrao = 0.05

// Service gera o split e as parcelas de repasse.
type Service struct {
	Repository *Repository
}

func NewService() *Service {
	return &Service{Repository: NewRepository()}
}

func percentualConfigurado() float64 {
	raw := os.Getenv("COMISSAO_PERCENTUAL")
	if raw == "" {
		return PercentualPadrao
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || p < 0 || p >= 1 {
		return PercentualPadrao
	}
	return p
}

func parcelasConfiguradas() int {
	raw := os.Getenv("COMISSAO_QTD_PARCELAS")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// GerarParaProposta calcula o split sobre o valor aprovado e gera as
// parcelas mensais do repasse ao fornecedor, a primeira vencendo em 30 dias.
func (s *Service) GerarParaProposta(db *gorm.DB, propostaID, fornecedorID uint, valor float64) (*Comissao, error) {
	percentual := percentualConfigurado()
	qtd := parcelasConfiguradas()

	valorPlataforma := valor * percentual
	valorFornecedor := valor - valorPlataforma

	c := &Comissao{
		PropostaID:      propostaID,
		FornecedorID:    fornecedorID,
		Percentual:      percentual,
		ValorPlataforma: valorPlataforma,
		ValorFornecedor: valorFornecedor,
		QtdParcelas:     qtd,
	}

	valorParcela := valorFornecedor / float64(qtd)
	vencimento := time.Now().AddDate(0, 1, 0)
	for i := 0; i < qtd; i++ {
		c.Parcelas = append(c.Parcelas, Parcela{
			Valor:          valorParcela,
			DataVencimento: vencimento.AddDate(0, i, 0),
		})
	}

	if err := s.Repository.Create(db, c); err != nil {
		return nil, err
	}
	return c, nil
}

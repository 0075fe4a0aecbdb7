// internal/cotacao/dto.go
package cotacao

import "time"

type itemCotacaoDTO struct {
	Produto         string  `json:"produto"`
	Quantidade      float64 `json:"quantidade"`
	PrecoReferencia float64 `json:"precoReferencia"`
}

type cotacaoCreateDTO struct {
	Titulo    string     `json:"titulo"`
	Descricao string     `json:"descricao"`
	Prazo     *time.Time `json:"prazo"`
	Status    string     `json:"status"` // "rascunho" | "enviada" (default "enviada")

	Escopo          string `json:"escopo"`
	FornecedorID    *uint  `json:"fornecedorId"`
	FornecedoresIDs []uint `json:"fornecedoresIds"`

	ExigeVisita bool       `json:"exigeVisita"`
	PrazoVisita *time.Time `json:"prazoVisita"`

	Itens []itemCotacaoDTO `json:"itens"`
}

type atualizarStatusRequest struct {
	Status string `json:"status"`
}

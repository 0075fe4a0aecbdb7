package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

func enviar(payload map[string]any) {
	url := os.Getenv("WEBHOOK_URL")
	if url == "" {
		log.Printf("WEBHOOK_URL não configurada; alerta descartado: %v", payload)
		return
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}

// EnviarAlertaCNPJDuplicado avisa o time comercial sobre cadastro repetido.
func EnviarAlertaCNPJDuplicado(cnpj string) {
	enviar(map[string]any{
		"mensagem": "Alerta: novo cadastro com CNPJ já existente",
		"cnpj":     cnpj,
	})
}

// EnviarAlertaTransicaoFalhou registra o sucesso parcial do envio de proposta:
// a proposta foi gravada como enviada, mas o avanço da cotação falhou e pode
// ser refeito pela reconciliação.
func EnviarAlertaTransicaoFalhou(cotacaoID, fornecedorID uint, causa error) {
	enviar(map[string]any{
		"mensagem":     "Alerta: proposta enviada, mas a cotação não avançou para 'recebendo'",
		"cotacaoId":    cotacaoID,
		"fornecedorId": fornecedorID,
		"causa":        causa.Error(),
	})
}

package handlers

import (
	"errors"

	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/services"
	"github.com/fisk/followup/internal/store"
)

var okText = map[string]string{
	"saved":    "Contato salvo.",
	"updated":  "Contato atualizado.",
	"deleted":  "Contato excluído.",
	"exported": "Arquivo exportado.",
	"backup":   "Backup criado.",
	"qr":       "QR code gerado.",
}

var fieldText = map[string]string{
	"name":       "Nome é obrigatório.",
	"visit_date": "Data da visita inválida. Use DD/MM/AAAA.",
	"visit_from": "Data inicial do filtro inválida. Use DD/MM/AAAA.",
	"visit_to":   "Data final do filtro inválida. Use DD/MM/AAAA.",
	"start":      "Data inicial do relatório inválida. Use DD/MM/AAAA.",
	"end":        "Data final do relatório inválida. Use DD/MM/AAAA.",
	"period":     "Período desconhecido.",
	"sort":       "Coluna de ordenação desconhecida.",
}

// Message turns an error into the line shown to the user.
func Message(err error) string {
	var ve *models.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		if t, ok := fieldText[ve.Field]; ok {
			return t
		}
		return ve.Error()
	case errors.Is(err, store.ErrNotFound):
		return "Contato não encontrado."
	case errors.Is(err, services.ErrBackupSourceMissing):
		return "Banco de dados não encontrado: " + err.Error()
	case errors.Is(err, services.ErrNoPhone):
		return "Telefone sem DDD, não é possível gerar o link do WhatsApp."
	case errors.Is(err, store.ErrDatabase):
		return "Erro no banco de dados: " + err.Error()
	}
	return err.Error()
}

func (a *App) ok(key string) {
	if t, found := okText[key]; found {
		a.println(t)
		return
	}
	a.println(key)
}

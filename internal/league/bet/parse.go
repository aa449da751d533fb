package bet

import (
	"strconv"
	"strings"
	"time"
)

// ParseCurrency aceita string ou número com símbolos de moeda (€, $) e
// separadores de milhar. Entrada vazia ou não interpretável vira 0 — parsing
// defensivo, nunca propaga erro.
func ParseCurrency(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}

	s := strings.TrimSpace(toString(value))
	if s == "" {
		return 0
	}
	cleaned := strings.NewReplacer("€", "", "$", "", ",", "", " ", "").Replace(s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// Layouts aceitos antes do padrão DD-Mon-YYYY da planilha.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02",
	"02-Jan-2006",
	"2-Jan-2006",
}

// ParseDate tenta primeiro formatos ISO e depois o padrão DD-Mon-YYYY com
// abreviação de três letras do mês. Retorna nil quando nada casa.
func ParseDate(value string) *time.Time {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// toString normaliza valores frouxamente tipados vindos da planilha.
func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

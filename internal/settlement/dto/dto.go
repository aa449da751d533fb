package dto

// BetLifecycle é a cópia local do evento consumido do tópico
// league_bet_lifecycle. O worker mantém o próprio tipo para não acoplar a
// deserialização ao contrato compartilhado.
type BetLifecycle struct {
	Type     string `json:"type"`
	BetID    string `json:"bet_id"`
	Actor    string `json:"actor"`
	Detail   string `json:"detail"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}

package ws

// ClientMsg é o que o cliente WebSocket envia (só ping por enquanto).
type ClientMsg struct {
	Type string `json:"type"`
}

// BetsUpdated avisa os clientes que o snapshot mudou e deve ser rebuscado.
type BetsUpdated struct {
	Type     string `json:"type"` // "bets_updated"
	Count    int    `json:"count"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}

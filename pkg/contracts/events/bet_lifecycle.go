package events

// Tipos de evento publicados no tópico "league_bet_lifecycle".
const (
	TypeBetCreated     = "bet_created"
	TypeBetConfirmed   = "bet_confirmed"
	TypeBetDeclined    = "bet_declined"
	TypeWinnerProposed = "winner_proposed"
	TypeWinnerFinal    = "winner_final"
	TypePaidProposed   = "paid_proposed"
	TypeBetSettled     = "bet_settled"
)

// BetLifecycle é o envelope único de eventos de ciclo de vida.
// Actor é quem disparou a transição; Detail carrega o dado específico da
// ação (lado vencedor proposto, oponente da aposta criada, etc).
type BetLifecycle struct {
	Type     string `json:"type"`
	BetID    string `json:"bet_id,omitempty"`
	Actor    string `json:"actor"`
	Detail   string `json:"detail,omitempty"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}

package topics

const (
	// Ciclo de vida das apostas da liga
	BetLifecycle = "league_bet_lifecycle"

	// DLQ
	BetLifecycleDLQ = "league_bet_lifecycle_dlq"
)

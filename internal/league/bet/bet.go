package bet

import (
	"strings"
	"time"
)

// Side identifica qual lado da aposta (rótulo, não o nome do participante).
type Side string

const (
	SideNone    Side = ""
	SideBetter1 Side = "better1"
	SideBetter2 Side = "better2"
)

// Status é o estado de ciclo de vida derivado da aposta.
// Nunca é armazenado de forma independente: sempre recalculado a partir do
// status bruto da planilha + rótulo de vencedor.
type Status string

const (
	StatusConfirming Status = "confirming"
	StatusActive     Status = "active"
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusDeclined   Status = "declined"
)

// Bet é a entidade canônica de uma aposta entre dois participantes.
// Objetos imutáveis: a coleção inteira é reconstruída a cada refresh.
type Bet struct {
	ID            string
	Date          *time.Time // nil quando a data da linha não é interpretável
	Better1       string     // proponente/dono da aposta
	Better2       string
	Better1Bet    string
	Better2Bet    string
	Better1Reward float64
	Better2Reward float64

	WinnerLabel Side
	WinnerName  string
	LoserName   string
	AmountWon   float64
	AmountLost  float64

	Status Status

	// Protocolo de duas fases: proposta aguardando atestação do outro lado.
	ProposerWinner      string
	ProposedWinnerValue Side
	ProposerPaid        string
	ProposedPaidValue   string
}

// IsParticipant verifica se o nome é um dos dois lados da aposta.
func (b *Bet) IsParticipant(name string) bool {
	return name != "" && (b.Better1 == name || b.Better2 == name)
}

// Opponent retorna o outro participante; vazio se name não participa.
func (b *Bet) Opponent(name string) string {
	switch name {
	case b.Better1:
		return b.Better2
	case b.Better2:
		return b.Better1
	}
	return ""
}

// SideName resolve um rótulo de lado para o nome do participante.
func (b *Bet) SideName(s Side) string {
	switch s {
	case SideBetter1:
		return b.Better1
	case SideBetter2:
		return b.Better2
	}
	return ""
}

// Terminal indica que nenhuma ação adicional é permitida sobre a aposta.
func (b *Bet) Terminal() bool {
	return b.Status == StatusPaid || b.Status == StatusDeclined
}

// deriveStatus calcula o estado canônico a partir do status bruto e do
// rótulo de vencedor. Regra: paid > pending confirmation > declined >
// vencedor definido (pending) > active.
func deriveStatus(raw string, winner Side) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid":
		return StatusPaid
	case "pending confirmation":
		return StatusConfirming
	case "declined":
		return StatusDeclined
	}
	if winner != SideNone {
		return StatusPending
	}
	return StatusActive
}

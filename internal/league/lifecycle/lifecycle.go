package lifecycle

import (
	"errors"

	"github.com/radieske/bet-league-poc/internal/league/bet"
)

// Action é uma transição solicitável sobre uma aposta. A efetivação é sempre
// do colaborador externo (a planilha); aqui fica o contrato de habilitação:
// nunca oferecer nem aceitar uma ação que o status derivado não permite.
type Action string

const (
	ActionConfirm        Action = "confirm"
	ActionDecline        Action = "decline"
	ActionProposeWinner  Action = "propose_winner"
	ActionAttestWinner   Action = "attest_winner"
	ActionProposePayment Action = "propose_payment"
	ActionAttestPayment  Action = "attest_payment"
)

// User é a identidade mínima exigida para autorizar transições.
type User struct {
	Username string
	IsAdmin  bool
}

var (
	ErrNotParticipant    = errors.New("user is not a participant of this bet")
	ErrSelfAttest        = errors.New("proposer cannot attest their own proposal")
	ErrInvalidTransition = errors.New("action not allowed in current bet state")
	ErrWinnerMismatch    = errors.New("attested winner differs from proposed winner")
)

// Phase do sub-protocolo de duas fases (vencedor ou pagamento).
type Phase int

const (
	PhaseNoProposal Phase = iota
	PhaseProposed
	PhaseFinalized
)

// WinnerPhase retorna a fase do sub-protocolo de resolução de vencedor.
func WinnerPhase(b *bet.Bet) Phase {
	if b.WinnerLabel != bet.SideNone {
		return PhaseFinalized
	}
	if b.ProposerWinner != "" {
		return PhaseProposed
	}
	return PhaseNoProposal
}

// PaymentPhase retorna a fase do sub-protocolo de liquidação de pagamento.
func PaymentPhase(b *bet.Bet) Phase {
	if b.Status == bet.StatusPaid {
		return PhaseFinalized
	}
	if b.ProposerPaid != "" {
		return PhaseProposed
	}
	return PhaseNoProposal
}

// CanModify autoriza somente os dois participantes ou um administrador.
// Qualquer outro usuário observa estado mas não transiciona.
func CanModify(u User, b *bet.Bet) bool {
	return u.IsAdmin || b.IsParticipant(u.Username)
}

// AllowedActions enumera as ações que o usuário pode disparar agora.
// É a fonte única para habilitar botões e validar requisições.
func AllowedActions(u User, b *bet.Bet) []Action {
	if b.Terminal() || !CanModify(u, b) {
		return nil
	}

	switch b.Status {
	case bet.StatusConfirming:
		// Só o oponente (ou admin) aceita ou recusa a proposta.
		if u.Username == b.Better2 || u.IsAdmin {
			return []Action{ActionConfirm, ActionDecline}
		}
		return nil

	case bet.StatusActive:
		switch WinnerPhase(b) {
		case PhaseNoProposal:
			return []Action{ActionProposeWinner}
		case PhaseProposed:
			if b.ProposerWinner == u.Username {
				return nil // proponente aguarda o outro lado
			}
			return []Action{ActionAttestWinner}
		}
		return nil

	case bet.StatusPending:
		switch PaymentPhase(b) {
		case PhaseNoProposal:
			return []Action{ActionProposePayment}
		case PhaseProposed:
			if b.ProposerPaid == u.Username {
				return nil
			}
			return []Action{ActionAttestPayment}
		}
		return nil
	}
	return nil
}

// Authorize valida uma transição antes de encaminhá-la ao colaborador
// externo. winner só é considerado nas ações de vencedor.
func Authorize(u User, b *bet.Bet, a Action, winner bet.Side) error {
	if !CanModify(u, b) {
		return ErrNotParticipant
	}
	if b.Terminal() {
		return ErrInvalidTransition
	}

	switch a {
	case ActionConfirm, ActionDecline:
		if b.Status != bet.StatusConfirming {
			return ErrInvalidTransition
		}
		if u.Username != b.Better2 && !u.IsAdmin {
			return ErrNotParticipant
		}
		return nil

	case ActionProposeWinner:
		if b.Status != bet.StatusActive || WinnerPhase(b) != PhaseNoProposal {
			return ErrInvalidTransition
		}
		if winner != bet.SideBetter1 && winner != bet.SideBetter2 {
			return ErrInvalidTransition
		}
		return nil

	case ActionAttestWinner:
		if b.Status != bet.StatusActive || WinnerPhase(b) != PhaseProposed {
			return ErrInvalidTransition
		}
		if b.ProposerWinner == u.Username {
			return ErrSelfAttest
		}
		if winner != bet.SideNone && winner != b.ProposedWinnerValue {
			return ErrWinnerMismatch
		}
		return nil

	case ActionProposePayment:
		if b.Status != bet.StatusPending || PaymentPhase(b) != PhaseNoProposal {
			return ErrInvalidTransition
		}
		return nil

	case ActionAttestPayment:
		if b.Status != bet.StatusPending || PaymentPhase(b) != PhaseProposed {
			return ErrInvalidTransition
		}
		if b.ProposerPaid == u.Username {
			return ErrSelfAttest
		}
		return nil
	}
	return ErrInvalidTransition
}

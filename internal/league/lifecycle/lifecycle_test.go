package lifecycle

import (
	"errors"
	"testing"

	"github.com/radieske/bet-league-poc/internal/league/bet"
)

var (
	ana   = User{Username: "Ana"}
	bruno = User{Username: "Bruno"}
	carla = User{Username: "Carla"}
	admin = User{Username: "Root", IsAdmin: true}
)

func confirmingBet() bet.Bet {
	return bet.Bet{ID: "1", Better1: "Ana", Better2: "Bruno", Status: bet.StatusConfirming}
}

func activeBet() bet.Bet {
	return bet.Bet{ID: "1", Better1: "Ana", Better2: "Bruno", Status: bet.StatusActive}
}

func pendingBet() bet.Bet {
	return bet.Bet{
		ID: "1", Better1: "Ana", Better2: "Bruno",
		Status: bet.StatusPending, WinnerLabel: bet.SideBetter1,
		WinnerName: "Ana", LoserName: "Bruno",
	}
}

func hasAction(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func TestConfirmingOnlyOpponentActs(t *testing.T) {
	b := confirmingBet()

	if got := AllowedActions(ana, &b); len(got) != 0 {
		t.Errorf("proposer should have no actions while confirming, got %v", got)
	}
	got := AllowedActions(bruno, &b)
	if !hasAction(got, ActionConfirm) || !hasAction(got, ActionDecline) {
		t.Errorf("opponent actions = %v, want confirm+decline", got)
	}
	if got := AllowedActions(admin, &b); !hasAction(got, ActionConfirm) {
		t.Errorf("admin actions = %v, want confirm allowed", got)
	}
	if got := AllowedActions(carla, &b); got != nil {
		t.Errorf("outsider actions = %v, want none", got)
	}
}

func TestActiveWinnerProtocol(t *testing.T) {
	b := activeBet()

	// sem proposta: qualquer participante propõe
	if got := AllowedActions(ana, &b); !hasAction(got, ActionProposeWinner) {
		t.Errorf("actions = %v, want propose_winner", got)
	}

	// com proposta da Ana: só Bruno atesta
	b.ProposerWinner = "Ana"
	b.ProposedWinnerValue = bet.SideBetter1

	if got := AllowedActions(ana, &b); len(got) != 0 {
		t.Errorf("proposer must wait, got %v", got)
	}
	if got := AllowedActions(bruno, &b); !hasAction(got, ActionAttestWinner) {
		t.Errorf("actions = %v, want attest_winner", got)
	}
}

func TestAuthorizeSelfAttestRejected(t *testing.T) {
	b := activeBet()
	b.ProposerWinner = "Ana"
	b.ProposedWinnerValue = bet.SideBetter1

	err := Authorize(ana, &b, ActionAttestWinner, bet.SideBetter1)
	if !errors.Is(err, ErrSelfAttest) {
		t.Errorf("err = %v, want ErrSelfAttest", err)
	}
	if err := Authorize(bruno, &b, ActionAttestWinner, bet.SideBetter1); err != nil {
		t.Errorf("opponent attest rejected: %v", err)
	}
}

func TestAuthorizeWinnerMismatch(t *testing.T) {
	b := activeBet()
	b.ProposerWinner = "Ana"
	b.ProposedWinnerValue = bet.SideBetter1

	err := Authorize(bruno, &b, ActionAttestWinner, bet.SideBetter2)
	if !errors.Is(err, ErrWinnerMismatch) {
		t.Errorf("err = %v, want ErrWinnerMismatch", err)
	}
}

func TestAuthorizeTerminalStates(t *testing.T) {
	paid := pendingBet()
	paid.Status = bet.StatusPaid

	declined := confirmingBet()
	declined.Status = bet.StatusDeclined

	for _, b := range []bet.Bet{paid, declined} {
		for _, a := range []Action{ActionConfirm, ActionProposeWinner, ActionAttestWinner, ActionProposePayment, ActionAttestPayment} {
			if err := Authorize(ana, &b, a, bet.SideBetter1); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s on %s: err = %v, want ErrInvalidTransition", a, b.Status, err)
			}
		}
		if got := AllowedActions(ana, &b); got != nil {
			t.Errorf("terminal bet offers actions: %v", got)
		}
	}
}

func TestAuthorizeOutsiderRejected(t *testing.T) {
	b := activeBet()
	err := Authorize(carla, &b, ActionProposeWinner, bet.SideBetter1)
	if !errors.Is(err, ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}

func TestAuthorizeConfirmByProposerRejected(t *testing.T) {
	b := confirmingBet()
	err := Authorize(ana, &b, ActionConfirm, bet.SideNone)
	if !errors.Is(err, ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}

func TestPaymentProtocol(t *testing.T) {
	b := pendingBet()

	if got := AllowedActions(ana, &b); !hasAction(got, ActionProposePayment) {
		t.Errorf("actions = %v, want propose_payment", got)
	}

	b.ProposerPaid = "Bruno"
	if got := AllowedActions(bruno, &b); len(got) != 0 {
		t.Errorf("payment proposer must wait, got %v", got)
	}
	if got := AllowedActions(ana, &b); !hasAction(got, ActionAttestPayment) {
		t.Errorf("actions = %v, want attest_payment", got)
	}

	if err := Authorize(bruno, &b, ActionAttestPayment, bet.SideNone); !errors.Is(err, ErrSelfAttest) {
		t.Errorf("self attest payment: err = %v, want ErrSelfAttest", err)
	}
	if err := Authorize(ana, &b, ActionAttestPayment, bet.SideNone); err != nil {
		t.Errorf("attest payment rejected: %v", err)
	}
}

func TestPhases(t *testing.T) {
	b := activeBet()
	if WinnerPhase(&b) != PhaseNoProposal {
		t.Error("expected PhaseNoProposal")
	}
	b.ProposerWinner = "Ana"
	if WinnerPhase(&b) != PhaseProposed {
		t.Error("expected PhaseProposed")
	}
	b.WinnerLabel = bet.SideBetter1
	if WinnerPhase(&b) != PhaseFinalized {
		t.Error("expected PhaseFinalized")
	}

	p := pendingBet()
	if PaymentPhase(&p) != PhaseNoProposal {
		t.Error("expected payment PhaseNoProposal")
	}
	p.ProposerPaid = "Ana"
	if PaymentPhase(&p) != PhaseProposed {
		t.Error("expected payment PhaseProposed")
	}
	p.Status = bet.StatusPaid
	if PaymentPhase(&p) != PhaseFinalized {
		t.Error("expected payment PhaseFinalized")
	}
}

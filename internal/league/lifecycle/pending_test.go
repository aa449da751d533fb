package lifecycle

import (
	"testing"

	"github.com/radieske/bet-league-poc/internal/league/bet"
)

func TestPendingActionsConfirming(t *testing.T) {
	bets := []bet.Bet{
		{ID: "1", Better1: "Ana", Better2: "Bruno", Status: bet.StatusConfirming},
	}

	if got := PendingActionsFor(bruno, bets); len(got) != 1 {
		t.Errorf("opponent pending = %d, want 1", len(got))
	}
	if got := PendingActionsFor(ana, bets); len(got) != 0 {
		t.Errorf("proposer pending = %d, want 0", len(got))
	}
	if got := PendingActionsFor(carla, bets); len(got) != 0 {
		t.Errorf("outsider pending = %d, want 0", len(got))
	}
}

func TestPendingActionsWinnerAttestation(t *testing.T) {
	bets := []bet.Bet{
		{
			ID: "1", Better1: "Ana", Better2: "Bruno",
			Status:         bet.StatusActive,
			ProposerWinner: "Ana", ProposedWinnerValue: bet.SideBetter1,
		},
	}

	// quem propôs nunca aparece como pendência própria
	if got := PendingActionsFor(ana, bets); len(got) != 0 {
		t.Errorf("proposer pending = %d, want 0 (no self-attestation)", len(got))
	}
	if got := PendingActionsFor(bruno, bets); len(got) != 1 {
		t.Errorf("attester pending = %d, want 1", len(got))
	}
}

func TestPendingActionsPaymentAttestation(t *testing.T) {
	bets := []bet.Bet{
		{
			ID: "1", Better1: "Ana", Better2: "Bruno",
			Status: bet.StatusPending, WinnerLabel: bet.SideBetter1,
			ProposerPaid: "Bruno",
		},
	}

	if got := PendingActionsFor(bruno, bets); len(got) != 0 {
		t.Errorf("payment proposer pending = %d, want 0", len(got))
	}
	if got := PendingActionsFor(ana, bets); len(got) != 1 {
		t.Errorf("payment attester pending = %d, want 1", len(got))
	}
}

func TestPendingActionsNoProposalNoPending(t *testing.T) {
	bets := []bet.Bet{
		{ID: "1", Better1: "Ana", Better2: "Bruno", Status: bet.StatusActive},
		{ID: "2", Better1: "Ana", Better2: "Bruno", Status: bet.StatusPending, WinnerLabel: bet.SideBetter1},
		{ID: "3", Better1: "Ana", Better2: "Bruno", Status: bet.StatusPaid, WinnerLabel: bet.SideBetter1},
		{ID: "4", Better1: "Ana", Better2: "Bruno", Status: bet.StatusDeclined},
	}

	if got := PendingActionsFor(ana, bets); len(got) != 0 {
		t.Errorf("pending = %d, want 0 when nothing awaits attestation", len(got))
	}
}

func TestPendingActionsNeverDuplicates(t *testing.T) {
	bets := []bet.Bet{
		{ID: "1", Better1: "Ana", Better2: "Bruno", Status: bet.StatusConfirming},
		{
			ID: "2", Better1: "Ana", Better2: "Bruno",
			Status:         bet.StatusActive,
			ProposerWinner: "Ana", ProposedWinnerValue: bet.SideBetter2,
		},
	}

	got := PendingActionsFor(bruno, bets)
	if len(got) != 2 {
		t.Fatalf("pending = %d, want 2", len(got))
	}
	if got[0].ID == got[1].ID {
		t.Error("bet listed twice in pending actions")
	}

	if n := PendingActionCount(bruno, bets); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

package bet

import "testing"

func TestBuildBetsDropsRowsMissingParticipants(t *testing.T) {
	rows := []Row{
		{"Better 1": "Ana"},                        // sem better2
		{"Better 2": "Bruno"},                      // sem better1
		{"Better 1": "Ana", "Better 2": "Bruno"},   // ok
		{"Better1": "Carla", "Better2": "Diego"},   // ok, cabeçalhos camelCase
		{"Better 1 bet": "algo", "Status": "Paid"}, // sem participantes
	}

	bets := BuildBets(rows)
	if len(bets) != 2 {
		t.Fatalf("expected 2 bets, got %d", len(bets))
	}
	if bets[0].Better1 != "Ana" || bets[1].Better1 != "Carla" {
		t.Errorf("input order not preserved: %v, %v", bets[0].Better1, bets[1].Better1)
	}
}

func TestBuildBetsColumnSynonymPriority(t *testing.T) {
	// "Better 1 reward" tem prioridade sobre "Reward 1"
	rows := []Row{{
		"Better 1":        "Ana",
		"Better 2":        "Bruno",
		"Better 1 reward": "€10",
		"Reward 1":        "99",
		"Reward 2":        "20",
	}}

	bets := BuildBets(rows)
	if len(bets) != 1 {
		t.Fatalf("expected 1 bet, got %d", len(bets))
	}
	if bets[0].Better1Reward != 10 {
		t.Errorf("Better1Reward = %v, want 10 (first synonym wins)", bets[0].Better1Reward)
	}
	if bets[0].Better2Reward != 20 {
		t.Errorf("Better2Reward = %v, want 20 (fallback synonym)", bets[0].Better2Reward)
	}
}

func TestBuildBetsDerivesStatus(t *testing.T) {
	cases := []struct {
		name string
		row  Row
		want Status
	}{
		{"paid", Row{"Better 1": "A", "Better 2": "B", "Status": "Paid"}, StatusPaid},
		{"paid lowercase", Row{"Better 1": "A", "Better 2": "B", "Status": "paid"}, StatusPaid},
		{"confirming", Row{"Better 1": "A", "Better 2": "B", "Status": "Pending confirmation"}, StatusConfirming},
		{"declined", Row{"Better 1": "A", "Better 2": "B", "Status": "Declined"}, StatusDeclined},
		{"winner set means pending", Row{"Better 1": "A", "Better 2": "B", "Winner": "Better 1"}, StatusPending},
		{"no status no winner", Row{"Better 1": "A", "Better 2": "B"}, StatusActive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bets := BuildBets([]Row{tc.row})
			if len(bets) != 1 {
				t.Fatalf("expected 1 bet, got %d", len(bets))
			}
			if bets[0].Status != tc.want {
				t.Errorf("status = %q, want %q", bets[0].Status, tc.want)
			}
		})
	}
}

func TestBuildBetsDerivesWinnerAndAmounts(t *testing.T) {
	rows := []Row{{
		"Better 1":        "Ana",
		"Better 2":        "Bruno",
		"Better 1 reward": "10",
		"Better 2 reward": "15",
		"Winner":          "Better 2",
	}}

	b := BuildBets(rows)[0]
	if b.WinnerLabel != SideBetter2 {
		t.Fatalf("winner label = %q, want better2", b.WinnerLabel)
	}
	if b.WinnerName != "Bruno" || b.LoserName != "Ana" {
		t.Errorf("derived names = %q/%q, want Bruno/Ana", b.WinnerName, b.LoserName)
	}
	// fallback: ganho = aposta do vencedor, perda = aposta do perdedor
	if b.AmountWon != 15 || b.AmountLost != 10 {
		t.Errorf("amounts = %v/%v, want 15/10", b.AmountWon, b.AmountLost)
	}
	// invariante: ganho+perda nunca excede a soma das apostas
	if b.AmountWon+b.AmountLost > b.Better1Reward+b.Better2Reward {
		t.Error("amountWon+amountLost exceeds total stakes")
	}
}

func TestBuildBetsWinnerLabelByParticipantName(t *testing.T) {
	rows := []Row{{
		"Better 1": "Ana",
		"Better 2": "Bruno",
		"Winner":   "Ana", // planilhas antigas gravam o nome, não o rótulo
	}}

	b := BuildBets(rows)[0]
	if b.WinnerLabel != SideBetter1 {
		t.Errorf("winner label = %q, want better1", b.WinnerLabel)
	}
	if b.WinnerName != "Ana" || b.LoserName != "Bruno" {
		t.Errorf("derived names = %q/%q, want Ana/Bruno", b.WinnerName, b.LoserName)
	}
}

func TestBuildBetsExplicitAmountsAreKept(t *testing.T) {
	rows := []Row{{
		"Better 1":        "Ana",
		"Better 2":        "Bruno",
		"Better 1 reward": "10",
		"Better 2 reward": "15",
		"Winner":          "Better 1",
		"Amount won":      "€7",
		"Amount lost":     "€7",
	}}

	b := BuildBets(rows)[0]
	if b.AmountWon != 7 || b.AmountLost != 7 {
		t.Errorf("amounts = %v/%v, want explicit 7/7", b.AmountWon, b.AmountLost)
	}
}

func TestBuildBetsIDFallsBackToIndex(t *testing.T) {
	rows := []Row{
		{"Better 1": "A", "Better 2": "B"},
		{"Better 1": "C", "Better 2": "D", "id": "42"},
	}

	bets := BuildBets(rows)
	if bets[0].ID != "0" {
		t.Errorf("id = %q, want index fallback \"0\"", bets[0].ID)
	}
	if bets[1].ID != "42" {
		t.Errorf("id = %q, want explicit \"42\"", bets[1].ID)
	}
}

func TestBuildBetsProposalFields(t *testing.T) {
	rows := []Row{{
		"Better 1":            "Ana",
		"Better 2":            "Bruno",
		"proposerWinner":      "Ana",
		"proposedWinnerValue": "better2",
	}}

	b := BuildBets(rows)[0]
	if b.ProposerWinner != "Ana" {
		t.Errorf("proposerWinner = %q, want Ana", b.ProposerWinner)
	}
	if b.ProposedWinnerValue != SideBetter2 {
		t.Errorf("proposedWinnerValue = %q, want better2", b.ProposedWinnerValue)
	}
	if b.Status != StatusActive {
		t.Errorf("status = %q, proposal alone must not change status", b.Status)
	}
}

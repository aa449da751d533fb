package lifecycle

import "github.com/radieske/bet-league-poc/internal/league/bet"

// PendingActionsFor filtra as apostas que exigem ação do usuário agora:
//   - confirming em que ele é o better2 (aceitar/recusar);
//   - proposta de vencedor feita pelo outro lado, aguardando atestação;
//   - proposta de pagamento feita pelo outro lado, aguardando atestação.
//
// Cada aposta está em exatamente uma fase, então nunca aparece duplicada.
// Admin sem participação não recebe pendência: a fila é pessoal.
func PendingActionsFor(u User, bets []bet.Bet) []bet.Bet {
	var out []bet.Bet
	for i := range bets {
		b := &bets[i]
		if !b.IsParticipant(u.Username) {
			continue
		}

		switch b.Status {
		case bet.StatusConfirming:
			if b.Better2 == u.Username {
				out = append(out, *b)
			}
		case bet.StatusActive:
			if b.ProposerWinner != "" && b.ProposerWinner != u.Username {
				out = append(out, *b)
			}
		case bet.StatusPending:
			if b.ProposerPaid != "" && b.ProposerPaid != u.Username {
				out = append(out, *b)
			}
		}
	}
	return out
}

// PendingActionCount é o contador exibido no badge de pendências.
func PendingActionCount(u User, bets []bet.Bet) int {
	return len(PendingActionsFor(u, bets))
}

package dto

import (
	"github.com/radieske/bet-league-poc/internal/league/bet"
	"github.com/radieske/bet-league-poc/internal/league/lifecycle"
)

type ActionResponse struct {
	BetID   string `json:"betId,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// BetView é a aposta exposta pela API, já com as ações habilitadas para o
// usuário autenticado — o contrato de habilitação de UI do ciclo de vida.
type BetView struct {
	ID                  string   `json:"id"`
	Date                string   `json:"date,omitempty"`
	Better1             string   `json:"better1"`
	Better2             string   `json:"better2"`
	Better1Bet          string   `json:"better1Bet"`
	Better2Bet          string   `json:"better2Bet"`
	Better1Reward       float64  `json:"better1Reward"`
	Better2Reward       float64  `json:"better2Reward"`
	WinnerLabel         string   `json:"winnerLabel,omitempty"`
	WinnerName          string   `json:"winnerName,omitempty"`
	LoserName           string   `json:"loserName,omitempty"`
	AmountWon           float64  `json:"amountWon"`
	AmountLost          float64  `json:"amountLost"`
	Status              string   `json:"status"`
	ProposerWinner      string   `json:"proposerWinner,omitempty"`
	ProposedWinnerValue string   `json:"proposedWinnerValue,omitempty"`
	ProposerPaid        string   `json:"proposerPaid,omitempty"`
	Actions             []string `json:"actions,omitempty"`
}

func NewBetView(b *bet.Bet, u lifecycle.User) BetView {
	v := BetView{
		ID:                  b.ID,
		Better1:             b.Better1,
		Better2:             b.Better2,
		Better1Bet:          b.Better1Bet,
		Better2Bet:          b.Better2Bet,
		Better1Reward:       b.Better1Reward,
		Better2Reward:       b.Better2Reward,
		WinnerLabel:         string(b.WinnerLabel),
		WinnerName:          b.WinnerName,
		LoserName:           b.LoserName,
		AmountWon:           b.AmountWon,
		AmountLost:          b.AmountLost,
		Status:              string(b.Status),
		ProposerWinner:      b.ProposerWinner,
		ProposedWinnerValue: string(b.ProposedWinnerValue),
		ProposerPaid:        b.ProposerPaid,
	}
	if b.Date != nil {
		v.Date = b.Date.Format("2006-01-02")
	}
	for _, a := range lifecycle.AllowedActions(u, b) {
		v.Actions = append(v.Actions, string(a))
	}
	return v
}

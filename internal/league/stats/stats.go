package stats

import (
	"math"
	"sort"

	"github.com/radieske/bet-league-poc/internal/league/bet"
)

// Pseudo-participante reservado para apostas contra o "pote" da liga.
// Não entra no leaderboard.
const houseName = "Pot"

// MemberStat é o agregado por participante, derivado a cada refresh.
type MemberStat struct {
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	TotalWon      float64 `json:"totalWon"`
	TotalLost     float64 `json:"totalLost"`
	ActiveBets    int     `json:"activeBets"`
	TotalBets     int     `json:"totalBets"`
	PotentialGain float64 `json:"potentialGain"`
	NetProfit     float64 `json:"netProfit"`
	WinRate       int     `json:"winRate"` // percentual arredondado; 0 sem apostas decididas
}

// OverallStat é o resumo geral da liga.
type OverallStat struct {
	TotalBets     int     `json:"totalBets"`
	ActiveBets    int     `json:"activeBets"`
	CompletedBets int     `json:"completedBets"`
	PendingBets   int     `json:"pendingBets"`
	TotalVolume   float64 `json:"totalVolume"`
}

// official: apostas confirmando ou recusadas ainda não contam.
func official(s bet.Status) bool {
	return s != bet.StatusConfirming && s != bet.StatusDeclined
}

// MemberStats dobra a coleção em um registro por participante.
// Todo nome distinto (exceto o pote) ganha entrada, mesmo sem aposta
// decidida. Ordenação estável por lucro líquido decrescente; empates
// preservam a ordem de primeira aparição.
func MemberStats(bets []bet.Bet) []MemberStat {
	index := make(map[string]int)
	var out []MemberStat

	register := func(name string) {
		if name == "" || name == houseName {
			return
		}
		if _, ok := index[name]; !ok {
			index[name] = len(out)
			out = append(out, MemberStat{Name: name})
		}
	}
	for i := range bets {
		register(bets[i].Better1)
		register(bets[i].Better2)
	}

	at := func(name string) *MemberStat {
		if i, ok := index[name]; ok {
			return &out[i]
		}
		return nil
	}

	for i := range bets {
		b := &bets[i]
		if !official(b.Status) {
			continue
		}

		if s := at(b.Better1); s != nil {
			s.TotalBets++
		}
		if s := at(b.Better2); s != nil {
			s.TotalBets++
		}

		switch b.Status {
		case bet.StatusActive:
			if s := at(b.Better1); s != nil {
				s.ActiveBets++
				s.PotentialGain += b.Better1Reward
			}
			if s := at(b.Better2); s != nil {
				s.ActiveBets++
				s.PotentialGain += b.Better2Reward
			}
		case bet.StatusPending, bet.StatusPaid:
			if s := at(b.WinnerName); s != nil {
				s.Wins++
				s.TotalWon += b.AmountWon
			}
			if s := at(b.LoserName); s != nil {
				s.Losses++
				s.TotalLost += b.AmountLost
			}
		}
	}

	for i := range out {
		s := &out[i]
		s.NetProfit = s.TotalWon - s.TotalLost
		if decided := s.Wins + s.Losses; decided > 0 {
			s.WinRate = int(math.Round(float64(s.Wins) / float64(decided) * 100))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetProfit > out[j].NetProfit
	})
	return out
}

// OverallStats calcula os contadores gerais sobre apostas oficiais.
// TotalVolume soma os dois lados e divide por dois: cada aposta conta o par
// de valores uma vez, sem dobrar os lados da mesma disputa.
func OverallStats(bets []bet.Bet) OverallStat {
	var o OverallStat
	for i := range bets {
		b := &bets[i]
		if !official(b.Status) {
			continue
		}
		o.TotalBets++
		switch b.Status {
		case bet.StatusActive:
			o.ActiveBets++
		case bet.StatusPaid:
			o.CompletedBets++
		case bet.StatusPending:
			o.PendingBets++
		}
		o.TotalVolume += b.Better1Reward + b.Better2Reward
	}
	o.TotalVolume /= 2
	return o
}

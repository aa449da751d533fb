package bet

import (
	"strconv"
	"strings"
)

// Row é uma linha crua da planilha: mapa de variantes de nome de coluna para
// valores frouxamente tipados (string ou número).
type Row map[string]any

// Tabela ordenada de sinônimos por campo lógico. O builder tenta cada chave
// na ordem e usa o primeiro valor não vazio — cabeçalhos antigos da planilha
// convivem com os nomes camelCase do backend.
var columnSynonyms = map[string][]string{
	"id":                  {"id"},
	"date":                {"Date"},
	"better1":             {"Better 1", "Better1"},
	"better2":             {"Better 2", "Better2"},
	"better1Bet":          {"Better 1 bet", "Bet 1", "Better1Bet"},
	"better2Bet":          {"Better 2 bet", "Bet 2", "Better2Bet"},
	"better1Reward":       {"Better 1 reward", "Reward 1", "Better1Reward"},
	"better2Reward":       {"Better 2 reward", "Reward 2", "Better2Reward"},
	"winner":              {"Winner", "WinnerLabel"},
	"status":              {"Status"},
	"winnerName":          {"Winner name", "WinnerName"},
	"loserName":           {"Loser name", "LoserName"},
	"amountWon":           {"Amount won", "AmountWon"},
	"amountLost":          {"Amount lost", "AmountLost"},
	"proposerWinner":      {"proposerWinner"},
	"proposedWinnerValue": {"proposedWinnerValue"},
	"proposerPaid":        {"proposerPaid"},
	"proposedPaidValue":   {"proposedPaidValue"},
}

// lookup retorna o primeiro valor não vazio entre os sinônimos do campo.
func lookup(row Row, field string) any {
	for _, key := range columnSynonyms[field] {
		if v, ok := row[key]; ok && toString(v) != "" {
			return v
		}
	}
	return nil
}

func lookupString(row Row, field string) string {
	return toString(lookup(row, field))
}

// normalizeSide converte o rótulo cru de vencedor ("Better 1", "better2" ou
// o próprio nome do participante) para o lado canônico.
func normalizeSide(raw, better1, better2 string) Side {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return SideNone
	case "better 1", "better1":
		return SideBetter1
	case "better 2", "better2":
		return SideBetter2
	}
	switch raw {
	case better1:
		return SideBetter1
	case better2:
		return SideBetter2
	}
	return SideNone
}

// BuildBets mapeia linhas cruas para a coleção canônica de apostas.
// Linhas sem os dois participantes são descartadas (filtro, não erro).
// A ordem de entrada é preservada; inverter para exibição é papel do caller.
func BuildBets(rows []Row) []Bet {
	out := make([]Bet, 0, len(rows))
	for i, row := range rows {
		b := buildOne(row, i)
		if b.Better1 == "" || b.Better2 == "" {
			continue
		}
		out = append(out, b)
	}
	return out
}

func buildOne(row Row, index int) Bet {
	better1 := lookupString(row, "better1")
	better2 := lookupString(row, "better2")

	better1Reward := ParseCurrency(lookup(row, "better1Reward"))
	better2Reward := ParseCurrency(lookup(row, "better2Reward"))

	winner := normalizeSide(lookupString(row, "winner"), better1, better2)
	rawStatus := lookupString(row, "status")

	// Nomes derivados quando a linha não os traz explicitamente.
	winnerName := lookupString(row, "winnerName")
	loserName := lookupString(row, "loserName")
	if winner != SideNone {
		if winnerName == "" {
			if winner == SideBetter1 {
				winnerName = better1
			} else {
				winnerName = better2
			}
		}
		if loserName == "" {
			if winner == SideBetter1 {
				loserName = better2
			} else {
				loserName = better1
			}
		}
	}

	// Valores ganhos/perdidos: fallback para a aposta do lado correspondente.
	amountWon := ParseCurrency(lookup(row, "amountWon"))
	amountLost := ParseCurrency(lookup(row, "amountLost"))
	if amountWon == 0 && winner != SideNone {
		if winner == SideBetter1 {
			amountWon = better1Reward
		} else {
			amountWon = better2Reward
		}
	}
	if amountLost == 0 && winner != SideNone {
		if winner == SideBetter1 {
			amountLost = better2Reward
		} else {
			amountLost = better1Reward
		}
	}

	id := lookupString(row, "id")
	if id == "" {
		id = strconv.Itoa(index)
	}

	return Bet{
		ID:            id,
		Date:          ParseDate(lookupString(row, "date")),
		Better1:       better1,
		Better2:       better2,
		Better1Bet:    lookupString(row, "better1Bet"),
		Better2Bet:    lookupString(row, "better2Bet"),
		Better1Reward: better1Reward,
		Better2Reward: better2Reward,
		WinnerLabel:   winner,
		WinnerName:    winnerName,
		LoserName:     loserName,
		AmountWon:     amountWon,
		AmountLost:    amountLost,
		Status:        deriveStatus(rawStatus, winner),

		ProposerWinner:      lookupString(row, "proposerWinner"),
		ProposedWinnerValue: normalizeSide(lookupString(row, "proposedWinnerValue"), better1, better2),
		ProposerPaid:        lookupString(row, "proposerPaid"),
		ProposedPaidValue:   lookupString(row, "proposedPaidValue"),
	}
}

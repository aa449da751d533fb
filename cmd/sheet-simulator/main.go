package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/bet-league-poc/internal/shared/config"
	"github.com/radieske/bet-league-poc/internal/shared/logger"
	"github.com/radieske/bet-league-poc/internal/shared/metrics"
)

// Métricas Prometheus por ação do protocolo da planilha
var actionRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "sheet_requests_total",
	Help: "Total de requisições por ação",
}, []string{"action", "outcome"})

func init() {
	prometheus.MustRegister(actionRequests)
}

// row é a linha como a planilha guarda: cabeçalhos humanos + colunas de
// proposta em camelCase. O simulador é a autoridade das transições — a
// primeira proposta que chegar vence, igual ao backend real.
type row struct {
	ID                  int
	Date                string
	Better1             string
	Better2             string
	Better1Bet          string
	Better2Bet          string
	Better1Reward       float64
	Better2Reward       float64
	Winner              string // "Better 1" | "Better 2" | ""
	Status              string // "Pending confirmation" | "" | "Paid" | "Declined"
	ProposerWinner      string
	ProposedWinnerValue string // "better1" | "better2"
	ProposerPaid        string
}

type account struct {
	Password string
	IsAdmin  bool
}

type simulator struct {
	mu    sync.Mutex
	rows  []*row
	next  int
	users map[string]account
	log   *zap.Logger
}

type userPayload struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

func newSimulator(log *zap.Logger) *simulator {
	s := &simulator{
		users: map[string]account{
			"service": {Password: "service", IsAdmin: true},
			"Ana":     {Password: "ana"},
			"Bruno":   {Password: "bruno"},
			"Carla":   {Password: "carla"},
			"Diego":   {Password: "diego"},
		},
		log: log,
	}
	s.seed()
	return s
}

// seed cria uma liga pequena com estados variados pra exercitar o fluxo.
func (s *simulator) seed() {
	s.add(&row{Date: "10-Jan-2025", Better1: "Ana", Better2: "Bruno",
		Better1Bet: "Corinthians ganha o clássico", Better2Bet: "Não ganha",
		Better1Reward: 20, Better2Reward: 20, Winner: "Better 1", Status: "Paid"})
	s.add(&row{Date: "03-Feb-2025", Better1: "Carla", Better2: "Diego",
		Better1Bet: "Chove no carnaval", Better2Bet: "Não chove",
		Better1Reward: 10, Better2Reward: 15, Winner: "Better 2"})
	s.add(&row{Date: "21-Feb-2025", Better1: "Bruno", Better2: "Carla",
		Better1Bet: "Termino a maratona em menos de 4h", Better2Bet: "Não termina",
		Better1Reward: 30, Better2Reward: 30})
	s.add(&row{Date: "02-Mar-2025", Better1: "Diego", Better2: "Ana",
		Better1Bet: "Aprendo a surfar até junho", Better2Bet: "Não aprende",
		Better1Reward: 25, Better2Reward: 25, Status: "Pending confirmation"})
}

func (s *simulator) add(r *row) {
	r.ID = s.next
	s.next++
	s.rows = append(s.rows, r)
}

func (s *simulator) find(id string) *row {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil
	}
	for _, r := range s.rows {
		if r.ID == n {
			return r
		}
	}
	return nil
}

func (s *simulator) authenticate(username, password string) (userPayload, bool) {
	acc, ok := s.users[username]
	if !ok || acc.Password != password {
		return userPayload{}, false
	}
	return userPayload{Username: username, IsAdmin: acc.IsAdmin}, true
}

func writeResult(w http.ResponseWriter, action string, payload map[string]any) {
	outcome := "ok"
	if ok, _ := payload["success"].(bool); !ok {
		outcome = "error"
	}
	actionRequests.WithLabelValues(action, outcome).Inc()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func fail(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}

// handleExec é o único endpoint, imitando o web app stateless: toda ação
// chega como query string e responde {success, data?, user?, error?}.
func (s *simulator) handleExec(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	action := q.Get("action")

	user, ok := s.authenticate(q.Get("username"), q.Get("password"))
	if !ok {
		writeResult(w, action, fail("invalid credentials"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch action {
	case "login":
		writeResult(w, action, map[string]any{"success": true, "user": user})

	case "getUsers":
		names := make([]string, 0, len(s.users))
		for name := range s.users {
			if name != "service" {
				names = append(names, name)
			}
		}
		writeResult(w, action, map[string]any{"success": true, "data": names})

	case "getBets":
		writeResult(w, action, map[string]any{"success": true, "data": s.renderRows()})

	case "addBet":
		s.add(&row{
			Date:          time.Now().Format("2-Jan-2006"),
			Better1:       q.Get("better1"),
			Better2:       q.Get("better2"),
			Better1Bet:    q.Get("better1Bet"),
			Better2Bet:    q.Get("better2Bet"),
			Better1Reward: parseFloat(q.Get("better1Reward")),
			Better2Reward: parseFloat(q.Get("better2Reward")),
			Status:        "Pending confirmation",
		})
		writeResult(w, action, map[string]any{"success": true})

	case "confirmBet":
		writeResult(w, action, s.confirmBet(q.Get("rowId"), q.Get("confirmAction"), user))

	case "updateBet":
		writeResult(w, action, s.updateBet(q.Get("rowId"), q.Get("winner"), user))

	case "markPaid":
		writeResult(w, action, s.markPaid(q.Get("rowId"), user))

	default:
		writeResult(w, action, fail("unknown action"))
	}
}

func (s *simulator) confirmBet(rowID, confirmAction string, user userPayload) map[string]any {
	r := s.find(rowID)
	if r == nil {
		return fail("bet not found")
	}
	if r.Status != "Pending confirmation" {
		return fail("bet is not awaiting confirmation")
	}
	if user.Username != r.Better2 && !user.IsAdmin {
		return fail("only the opponent can confirm or decline")
	}
	switch confirmAction {
	case "confirm":
		r.Status = ""
	case "decline":
		r.Status = "Declined"
	default:
		return fail("confirmAction must be confirm or decline")
	}
	return map[string]any{"success": true}
}

func (s *simulator) updateBet(rowID, winner string, user userPayload) map[string]any {
	r := s.find(rowID)
	if r == nil {
		return fail("bet not found")
	}
	if r.Status == "Paid" || r.Status == "Declined" || r.Status == "Pending confirmation" {
		return fail("bet cannot be resolved in current state")
	}
	if r.Winner != "" {
		return fail("winner already finalized")
	}
	if user.Username != r.Better1 && user.Username != r.Better2 && !user.IsAdmin {
		return fail("only participants can resolve")
	}
	if winner != "better1" && winner != "better2" {
		return fail("winner must be better1 or better2")
	}

	// Primeira proposta abre a fase; a segunda, de outro usuário e com o
	// mesmo valor, finaliza. Autoatestação é rejeitada aqui também.
	if r.ProposerWinner == "" {
		r.ProposerWinner = user.Username
		r.ProposedWinnerValue = winner
		return map[string]any{"success": true, "phase": "proposed"}
	}
	if r.ProposerWinner == user.Username {
		return fail("proposer cannot verify their own claim")
	}
	if winner != r.ProposedWinnerValue {
		return fail("verification does not match proposed winner")
	}

	if winner == "better1" {
		r.Winner = "Better 1"
	} else {
		r.Winner = "Better 2"
	}
	r.ProposerWinner = ""
	r.ProposedWinnerValue = ""
	return map[string]any{"success": true, "phase": "finalized"}
}

func (s *simulator) markPaid(rowID string, user userPayload) map[string]any {
	r := s.find(rowID)
	if r == nil {
		return fail("bet not found")
	}
	if r.Winner == "" {
		return fail("bet has no winner yet")
	}
	if r.Status == "Paid" {
		return fail("bet already paid")
	}
	if user.Username != r.Better1 && user.Username != r.Better2 && !user.IsAdmin {
		return fail("only participants can settle")
	}

	if r.ProposerPaid == "" {
		r.ProposerPaid = user.Username
		return map[string]any{"success": true, "phase": "proposed"}
	}
	if r.ProposerPaid == user.Username {
		return fail("proposer cannot verify their own claim")
	}

	r.Status = "Paid"
	r.ProposerPaid = ""
	return map[string]any{"success": true, "phase": "finalized"}
}

// renderRows devolve as linhas com os cabeçalhos da planilha real, de
// propósito nos formatos mistos que o builder precisa tolerar.
func (s *simulator) renderRows() []map[string]any {
	out := make([]map[string]any, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, map[string]any{
			"id":                  strconv.Itoa(r.ID),
			"Date":                r.Date,
			"Better 1":            r.Better1,
			"Better 2":            r.Better2,
			"Better 1 bet":        r.Better1Bet,
			"Better 2 bet":        r.Better2Bet,
			"Better 1 reward":     r.Better1Reward,
			"Better 2 reward":     r.Better2Reward,
			"Winner":              r.Winner,
			"Status":              r.Status,
			"proposerWinner":      r.ProposerWinner,
			"proposedWinnerValue": r.ProposedWinnerValue,
			"proposerPaid":        r.ProposerPaid,
		})
	}
	return out
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	sim := newSimulator(log)

	mux := http.NewServeMux()
	mux.HandleFunc("/exec", sim.handleExec)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error { return nil })

	addr := ":" + cfg.HTTPPort
	log.Info("sheet-simulator listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Fatal("sheet-simulator failed", zap.Error(err))
	}
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/bet-league-poc/internal/league-service/dto"
	"github.com/radieske/bet-league-poc/internal/league-service/sheet"
	"github.com/radieske/bet-league-poc/internal/league-service/store"
	"github.com/radieske/bet-league-poc/internal/league/bet"
	"github.com/radieske/bet-league-poc/internal/league/lifecycle"
	"github.com/radieske/bet-league-poc/internal/league/stats"
	"github.com/radieske/bet-league-poc/pkg/contracts/events"
)

type Publisher interface {
	Publish(context.Context, events.BetLifecycle) error
}

type Server struct {
	log   *zap.Logger
	store *store.Store
	sheet *sheet.Client
	publ  Publisher
}

func NewServer(log *zap.Logger, st *store.Store, sc *sheet.Client, p Publisher) *Server {
	return &Server{log: log, store: st, sheet: sc, publ: p}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/bets", s.listBets)
	r.Post("/v1/bets", s.createBet)
	r.Post("/v1/bets/{id}/confirmation", s.confirmBet)
	r.Post("/v1/bets/{id}/winner", s.declareWinner)
	r.Post("/v1/bets/{id}/payment", s.markPaid)
	r.Get("/v1/stats/members", s.memberStats)
	r.Get("/v1/stats/overall", s.overallStats)
	r.Get("/v1/actions/pending", s.pendingActions)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// authenticate resolve a identidade junto à loja; a loja é stateless, então
// toda requisição carrega credenciais.
func (s *Server) authenticate(r *http.Request, creds dto.Credentials) (lifecycle.User, sheet.Credentials, error) {
	sc := sheet.Credentials{Username: creds.Username, Password: creds.Password}
	info, err := s.sheet.Login(r.Context(), sc)
	if err != nil {
		return lifecycle.User{}, sheet.Credentials{}, err
	}
	return lifecycle.User{Username: info.Username, IsAdmin: info.IsAdmin}, sc, nil
}

func credsFromQuery(r *http.Request) dto.Credentials {
	return dto.Credentials{
		Username: r.URL.Query().Get("username"),
		Password: r.URL.Query().Get("password"),
	}
}

// listBets devolve o snapshot em ordem mais-recente-primeiro, com as ações
// habilitadas para o usuário autenticado.
func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	user, _, err := s.authenticate(r, credsFromQuery(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	bets := s.store.Bets()
	views := make([]dto.BetView, 0, len(bets))
	for i := len(bets) - 1; i >= 0; i-- {
		views = append(views, dto.NewBetView(&bets[i], user))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) createBet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Better2 == "" || req.Better1Reward < 0 || req.Better2Reward < 0 {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	user, creds, err := s.authenticate(r, req.Credentials)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// better1 é sempre o usuário autenticado: ninguém propõe aposta em nome
	// de terceiros.
	if err := s.sheet.AddBet(r.Context(), creds, user.Username, req.Better2,
		req.Better1Bet, req.Better2Bet, req.Better1Reward, req.Better2Reward); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	_ = s.publ.Publish(r.Context(), events.BetLifecycle{
		Type:   events.TypeBetCreated,
		Actor:  user.Username,
		Detail: req.Better2,
	})

	s.afterMutation(r.Context())
	writeJSON(w, http.StatusCreated, dto.ActionResponse{Status: string(bet.StatusConfirming)})
}

func (s *Server) confirmBet(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	action := lifecycle.ActionConfirm
	evType := events.TypeBetConfirmed
	switch req.Action {
	case "confirm":
	case "decline":
		action = lifecycle.ActionDecline
		evType = events.TypeBetDeclined
	default:
		writeError(w, http.StatusBadRequest, "action must be confirm or decline")
		return
	}

	s.mutate(w, r, req.Credentials, action, bet.SideNone, evType, req.Action,
		func(ctx context.Context, creds sheet.Credentials, b *bet.Bet) error {
			return s.sheet.ConfirmBet(ctx, creds, b.ID, req.Action)
		})
}

// declareWinner cobre as duas fases: sem proposta vira proposta, com
// proposta de outro participante vira atestação que finaliza o vencedor.
func (s *Server) declareWinner(w http.ResponseWriter, r *http.Request) {
	var req dto.DeclareWinnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	winner := bet.Side(req.Winner)
	if winner != bet.SideBetter1 && winner != bet.SideBetter2 {
		writeError(w, http.StatusBadRequest, "winner must be better1 or better2")
		return
	}

	id := chi.URLParam(r, "id")
	b, ok := s.store.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "bet not found")
		return
	}

	action := lifecycle.ActionProposeWinner
	evType := events.TypeWinnerProposed
	if lifecycle.WinnerPhase(&b) == lifecycle.PhaseProposed {
		action = lifecycle.ActionAttestWinner
		evType = events.TypeWinnerFinal
	}

	s.mutate(w, r, req.Credentials, action, winner, evType, req.Winner,
		func(ctx context.Context, creds sheet.Credentials, b *bet.Bet) error {
			return s.sheet.UpdateBet(ctx, creds, b.ID, winner)
		})
}

// markPaid cobre proposta e atestação de pagamento; a atestação liquida a
// aposta e o evento de settlement alimenta o ledger do worker.
func (s *Server) markPaid(w http.ResponseWriter, r *http.Request) {
	var req dto.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	id := chi.URLParam(r, "id")
	b, ok := s.store.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "bet not found")
		return
	}

	action := lifecycle.ActionProposePayment
	evType := events.TypePaidProposed
	if lifecycle.PaymentPhase(&b) == lifecycle.PhaseProposed {
		action = lifecycle.ActionAttestPayment
		evType = events.TypeBetSettled
	}

	s.mutate(w, r, req.Credentials, action, bet.SideNone, evType, b.WinnerName,
		func(ctx context.Context, creds sheet.Credentials, b *bet.Bet) error {
			return s.sheet.MarkPaid(ctx, creds, b.ID)
		})
}

// mutate concentra o fluxo comum das transições: autentica, autoriza pelo
// contrato do ciclo de vida, encaminha para a loja (autoritativa), publica o
// evento e reconstrói o snapshot. Falha da loja não muda estado local algum.
func (s *Server) mutate(
	w http.ResponseWriter,
	r *http.Request,
	creds dto.Credentials,
	action lifecycle.Action,
	winner bet.Side,
	evType string,
	evDetail string,
	call func(context.Context, sheet.Credentials, *bet.Bet) error,
) {
	id := chi.URLParam(r, "id")
	b, ok := s.store.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "bet not found")
		return
	}

	user, sc, err := s.authenticate(r, creds)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := lifecycle.Authorize(user, &b, action, winner); err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotParticipant):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, lifecycle.ErrSelfAttest):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			writeError(w, http.StatusConflict, err.Error())
		}
		return
	}

	if err := call(r.Context(), sc, &b); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	_ = s.publ.Publish(r.Context(), events.BetLifecycle{
		Type:   evType,
		BetID:  b.ID,
		Actor:  user.Username,
		Detail: evDetail,
	})

	s.afterMutation(r.Context())
	writeJSON(w, http.StatusOK, dto.ActionResponse{BetID: b.ID, Status: "accepted"})
}

// afterMutation recarrega o snapshot e avisa as demais instâncias.
func (s *Server) afterMutation(ctx context.Context) {
	if err := s.store.Refresh(ctx); err != nil {
		s.log.Warn("refresh after mutation", zap.Error(err))
	}
	s.store.Invalidate(ctx)
}

func (s *Server) memberStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.MemberStats(s.store.Bets()))
}

func (s *Server) overallStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.OverallStats(s.store.Bets()))
}

func (s *Server) pendingActions(w http.ResponseWriter, r *http.Request) {
	user, _, err := s.authenticate(r, credsFromQuery(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	pending := lifecycle.PendingActionsFor(user, s.store.Bets())
	views := make([]dto.BetView, 0, len(pending))
	for i := range pending {
		views = append(views, dto.NewBetView(&pending[i], user))
	}
	writeJSON(w, http.StatusOK, views)
}

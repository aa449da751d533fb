package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/bet-league-poc/internal/settlement/dto"
)

// Postgres grava o ledger de transições de apostas
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório do ledger
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// InsertTransition registra uma transição de ciclo de vida no ledger.
// O ledger é append-only: o estado corrente vive na planilha, aqui fica a
// trilha de auditoria.
func (p *Postgres) InsertTransition(ctx context.Context, ev *dto.BetLifecycle) error {
	ts := time.UnixMilli(ev.TsUnixMs)
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bet_transitions (id, bet_id, event_type, actor, detail, event_ts, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())`,
		uuid.NewString(), ev.BetID, ev.Type, ev.Actor, ev.Detail, ts,
	)
	return err
}

// CountByBet retorna quantas transições já foram registradas para uma aposta
func (p *Postgres) CountByBet(ctx context.Context, betID string) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bet_transitions WHERE bet_id=$1`, betID).Scan(&n)
	return n, err
}

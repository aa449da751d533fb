package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-league-poc/internal/league-service/sheet"
	"github.com/radieske/bet-league-poc/internal/league/bet"
)

const rowsCacheKey = "league:rows"

// Store guarda o snapshot canônico de apostas do serviço.
// A coleção é reconstruída por inteiro a cada refresh — nunca remendada —
// então consumidores (stats, pendências) não observam atualização parcial.
type Store struct {
	log     *zap.Logger
	client  *sheet.Client
	creds   sheet.Credentials
	rdb     *redis.Client
	channel string
	ttl     time.Duration

	// OnUpdate é chamado após cada refresh bem-sucedido (ex.: broadcast WS).
	OnUpdate func(count int)

	mu   sync.RWMutex
	bets []bet.Bet
}

func New(log *zap.Logger, client *sheet.Client, creds sheet.Credentials, rdb *redis.Client, channel string) *Store {
	return &Store{
		log:     log,
		client:  client,
		creds:   creds,
		rdb:     rdb,
		channel: channel,
		ttl:     5 * time.Minute,
	}
}

// Bets retorna uma cópia do snapshot atual.
func (s *Store) Bets() []bet.Bet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bet.Bet, len(s.bets))
	copy(out, s.bets)
	return out
}

// Find localiza uma aposta pelo id no snapshot atual.
func (s *Store) Find(id string) (bet.Bet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.bets {
		if s.bets[i].ID == id {
			return s.bets[i], true
		}
	}
	return bet.Bet{}, false
}

// Refresh busca as linhas na loja, reconstrói o snapshot e troca por inteiro.
// Em caso de falha da loja tenta as linhas cacheadas no Redis; se nada
// existir, o snapshot anterior permanece intacto.
func (s *Store) Refresh(ctx context.Context) error {
	rows, err := s.client.FetchRows(ctx, s.creds)
	if err != nil {
		s.log.Warn("fetch rows failed, trying redis cache", zap.Error(err))
		cached, cerr := s.cachedRows(ctx)
		if cerr != nil {
			return err
		}
		rows = cached
	} else {
		s.cacheRows(ctx, rows)
	}

	bets := bet.BuildBets(rows)

	s.mu.Lock()
	s.bets = bets
	s.mu.Unlock()

	if s.OnUpdate != nil {
		s.OnUpdate(len(bets))
	}
	return nil
}

// Invalidate publica no canal Pub/Sub para que todas as instâncias recarreguem.
func (s *Store) Invalidate(ctx context.Context) {
	if err := s.rdb.Publish(ctx, s.channel, "refresh").Err(); err != nil {
		s.log.Warn("pubsub publish", zap.Error(err))
	}
}

// StartPolling reconstrói o snapshot em intervalo fixo até o contexto fechar.
func (s *Store) StartPolling(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.log.Warn("snapshot refresh", zap.Error(err))
				}
			}
		}
	}()
}

// StartSubscriber escuta o canal de invalidação e recarrega ao receber aviso.
func (s *Store) StartSubscriber(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, s.channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				if err := s.Refresh(ctx); err != nil {
					s.log.Warn("refresh on invalidate", zap.Error(err))
				}
			}
		}
	}()
}

func (s *Store) cacheRows(ctx context.Context, rows []bet.Row) {
	b, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, rowsCacheKey, b, s.ttl).Err(); err != nil {
		s.log.Warn("cache rows", zap.Error(err))
	}
}

func (s *Store) cachedRows(ctx context.Context) ([]bet.Row, error) {
	b, err := s.rdb.Get(ctx, rowsCacheKey).Bytes()
	if err != nil {
		return nil, err
	}
	var rows []bet.Row
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

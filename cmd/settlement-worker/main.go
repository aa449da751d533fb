package main

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/bet-league-poc/internal/settlement/dto"
	"github.com/radieske/bet-league-poc/internal/settlement/repo"
	"github.com/radieske/bet-league-poc/internal/shared/config"
	"github.com/radieske/bet-league-poc/internal/shared/db"
	"github.com/radieske/bet-league-poc/internal/shared/kafka"
	"github.com/radieske/bet-league-poc/internal/shared/logger"
	"github.com/radieske/bet-league-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Conexão com banco de dados Postgres para o ledger de transições
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	// Kafka consumer: consome eventos de ciclo de vida das apostas
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetLifecycle, "settlement")
	defer reader.Close()

	// Kafka producer: DLQ para eventos que não puderam ser gravados
	var dlqWriter *kafkago.Writer
	if cfg.TopicBetLifecycleDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetLifecycleDLQ)
		defer dlqWriter.Close()
	}

	ledger := repo.NewPostgres(pg)

	// Servidor de métricas Prometheus e healthcheck
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	log.Info("settlement-worker started", zap.String("consume", cfg.TopicBetLifecycle))

	ctx := context.Background()

	// Loop principal: consome eventos e grava a trilha de auditoria
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var ev dto.BetLifecycle
		if jerr := json.Unmarshal(msg.Value, &ev); jerr != nil {
			log.Error("unmarshal lifecycle event", zap.Error(jerr))
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, string(msg.Key), msg.Value)
			}
			continue
		}

		if err := processOne(ctx, ledger, &ev); err != nil {
			log.Error("ledger insert", zap.String("betId", ev.BetID), zap.Error(err))
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, ev.BetID, msg.Value)
			}
			// Backoff simples para evitar flood em caso de erro
			time.Sleep(500 * time.Millisecond)
		}
	}
}

// processOne grava a transição com retry simples antes de desistir.
func processOne(ctx context.Context, ledger *repo.Postgres, ev *dto.BetLifecycle) error {
	const retries = 3
	var err error
	for i := 0; i < retries; i++ {
		if err = ledger.InsertTransition(ctx, ev); err == nil {
			return nil
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return err
}

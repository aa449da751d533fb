package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	lhttp "github.com/radieske/bet-league-poc/internal/league-service/http"
	kpub "github.com/radieske/bet-league-poc/internal/league-service/producer"
	"github.com/radieske/bet-league-poc/internal/league-service/sheet"
	"github.com/radieske/bet-league-poc/internal/league-service/store"
	"github.com/radieske/bet-league-poc/internal/league-service/ws"
	"github.com/radieske/bet-league-poc/internal/shared/cache"
	"github.com/radieske/bet-league-poc/internal/shared/config"
	"github.com/radieske/bet-league-poc/internal/shared/kafka"
	"github.com/radieske/bet-league-poc/internal/shared/logger"
	"github.com/radieske/bet-league-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	ctx := context.Background()

	// Redis: cache de linhas cruas + canal de invalidação entre instâncias
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writer (tópico league_bet_lifecycle)
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetLifecycle)
	defer writer.Close()

	// deps
	client := sheet.New(cfg.SheetAPIURL)
	creds := sheet.Credentials{Username: cfg.SheetUsername, Password: cfg.SheetPassword}

	st := store.New(log, client, creds, rdb, cfg.RedisPubSubChannel)
	publ := kpub.NewKafkaPublisher(writer)

	// Hub WebSocket: avisa clientes conectados quando o snapshot muda
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	st.OnUpdate = func(count int) { hub.Broadcast(count) }

	// snapshot inicial; sem ele o serviço sobe vazio e se recupera no polling
	if err := st.Refresh(ctx); err != nil {
		log.Warn("initial snapshot", zap.Error(err))
	}
	st.StartPolling(ctx, cfg.RefreshInterval)
	st.StartSubscriber(ctx)

	// HTTP público
	api := lhttp.NewServer(log, st, client, publ)
	mux := http.NewServeMux()
	mux.Handle("/", api.Router())
	mux.HandleFunc("/ws", hub.HandleWS)

	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: mux,
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	log.Info("league-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}

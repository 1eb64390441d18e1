package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agromarket/analytics-api/infrastructure/database/postgres"
	"github.com/agromarket/analytics-api/infrastructure/integrator/tracker"
	"github.com/agromarket/analytics-api/infrastructure/integrator/tracker/trackerclient"
	"github.com/agromarket/analytics-api/infrastructure/repository"
	"github.com/agromarket/analytics-api/internal/api"
	"github.com/agromarket/analytics-api/internal/config"
	"github.com/agromarket/analytics-api/internal/scheduler"
	"github.com/agromarket/analytics-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	orderRepo := repository.NewOrderRepository(pgConn)
	statsRepo := repository.NewStatsRepository(pgConn)
	snapshotRepo := repository.NewReportSnapshotRepository(pgConn)

	trackerClient := trackerclient.NewClient(cfg)
	trackerIntegrator := tracker.New(cfg, trackerClient)

	reportService := reporting.NewService(cfg, trackerIntegrator, orderRepo, statsRepo)

	// Inicializa o agendador de snapshot diário do relatório
	reportSyncService := scheduler.NewReportSyncService(reportService, snapshotRepo, cfg)

	if err := reportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshot do relatório")
	} else {
		logrus.Info("Agendador de snapshot do relatório iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		snapshotRepo,
		reportSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

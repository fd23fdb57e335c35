package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "gadai-core/internal/adapter/http"
	idemp "gadai-core/internal/adapter/middleware"
	"gadai-core/internal/adapter/repository/mysql"
	"gadai-core/internal/config"
	"gadai-core/internal/infrastructure/cache"
	"gadai-core/internal/infrastructure/db"
	ledgeruc "gadai-core/internal/usecase/ledger"
	loanuc "gadai-core/internal/usecase/loan"
	paymentuc "gadai-core/internal/usecase/payment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	paymentRepo := mysql.NewPaymentRepository(gdb)
	ledgerRepo := mysql.NewLedgerRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	ledgerUC := ledgeruc.NewUsecase(ledgerRepo, tx)
	loanUC := loanuc.NewUsecase(loanRepo, paymentRepo, tx)
	paymentUC := paymentuc.NewUsecase(paymentRepo, loanRepo, loanUC, tx)

	cv := httpadp.NewValidator()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	httpadp.RegisterRoutes(e,
		httpadp.NewHandler(),
		httpadp.NewLedgerHandler(ledgerUC, cv),
		httpadp.NewLoanHandler(loanUC, paymentUC, cv),
		httpadp.NewPaymentHandler(paymentUC, cv),
	)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/finlog/finlog-backend/internal/bootstrap"
	plaidclient "github.com/finlog/finlog-backend/internal/client/plaid"
	"github.com/finlog/finlog-backend/internal/config"
	"github.com/finlog/finlog-backend/internal/crypto"
	"github.com/finlog/finlog-backend/internal/handlers"
	"github.com/finlog/finlog-backend/internal/response"
	"github.com/finlog/finlog-backend/internal/router"
	"github.com/finlog/finlog-backend/internal/services"
	"github.com/finlog/finlog-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	kmsHelper := crypto.NewKMS(bs.KMS, cfg.KMSKeyName)
	plaidAdapter := plaidclient.NewAdapter(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidEnvironment)

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	cstore := store.NewCategoryStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	bstore := store.NewBankStore(bs.Firestore, kmsHelper)

	// services
	guard := services.NewIntegrityGuard(tstore)
	userv := services.NewUserService(ustore, cstore)
	cserv := services.NewCategoryService(cstore, tstore, guard)
	tserv := services.NewTransactionService(tstore, cstore, cfg.StrictEditTypeMatch)
	plserv := services.NewPlaidService(plaidAdapter, bstore, tstore, cstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.CategorySvc = cserv
	deps.TransactionSvc = tserv
	deps.PlaidSvc = plserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}

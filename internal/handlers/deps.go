package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/finlog/finlog-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	UserSvc         UserService
	CategorySvc     CategoryService
	TransactionSvc  TransactionService
	PlaidSvc        PlaidService
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bancauno/backoffice/internal/db"
	"github.com/bancauno/backoffice/internal/middleware"
	"github.com/bancauno/backoffice/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures the HTTP router with all routes and
// middleware
func NewRouter(database *db.DB, logger *slog.Logger) http.Handler {
	handler := NewHandler(
		service.NewWithdrawalService(database),
		service.NewDepositService(database),
		service.NewDebitNoteService(database),
		service.NewClosureService(database),
		service.NewDrawerService(database),
		service.NewTransferService(database),
		service.NewOpeningService(database),
		service.NewTellerBalanceService(database),
		logger,
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health", handler.Health(database))

	r.Route("/api/cajero", func(r chi.Router) {
		r.Post("/retiro/buscar-cuenta", handler.FindAccount)
		r.Post("/retiro/consultar-movimientos", handler.AccountTransactions)
		r.Post("/retiro/procesar-retiro", handler.Withdraw)
		r.Post("/consignacion/procesar", handler.Deposit)
		r.Post("/nota-debito/aplicar-nota-debito", handler.ApplyDebitNote)
		r.Post("/cancelacion/cancelar", handler.CloseAccount)

		r.Post("/apertura/verificar-cliente", handler.VerifyClient)
		r.Post("/apertura/aperturar-cuenta", handler.OpenAccount)

		r.Post("/traslado/enviar", handler.SendTransfer)
		r.Get("/traslado/consultar-pendientes", handler.ListPendingTransfers)
		r.Post("/traslado/aceptar", handler.AcceptTransfer)

		r.Post("/caja/asignar", handler.AcquireDrawer)
		r.Get("/caja/consultar", handler.CurrentDrawer)
		r.Post("/caja/liberar", handler.ReleaseDrawer)

		r.Get("/saldo/consultar", handler.TellerBalances)
	})

	return r
}

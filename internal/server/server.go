package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/condomaster/condomaster-api/internal/email"
	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/handler"
	"github.com/condomaster/condomaster-api/internal/metrics"
	"github.com/condomaster/condomaster-api/internal/middleware"
	"github.com/condomaster/condomaster-api/internal/store"
	ws "github.com/condomaster/condomaster-api/internal/websocket"
	"github.com/rs/cors"
)

// Options carries the HTTP-facing settings.
type Options struct {
	// APIPrefix is prepended to every API route, e.g. "/api". Empty mounts
	// the API at the root.
	APIPrefix string
	// LoginRateLimit is the number of login attempts allowed per client IP
	// per minute; zero disables the limit.
	LoginRateLimit int
}

type Server struct {
	hub         *ws.Hub
	houseH      *handler.HouseHandler
	authH       *handler.AuthHandler
	feeH        *handler.FeeHandler
	paymentH    *handler.PaymentHandler
	expenseH    *handler.ExpenseHandler
	meetingH    *handler.MeetingHandler
	employeeH   *handler.EmployeeHandler
	vacationH   *handler.ActivityHandler
	leaveH      *handler.ActivityHandler
	shiftH      *handler.ShiftHandler
	actionLogH  *handler.ActionLogHandler
	rateLimiter *middleware.RateLimiter
	opts        Options
	logger      *slog.Logger
}

func New(gw gateway.Gateway, notifier *email.Notifier, opts Options, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	gw = metrics.InstrumentGateway(gw)

	return &Server{
		hub:         hub,
		houseH:      handler.NewHouseHandler(store.NewHouseStore(gw), hub, logger.With("component", "house")),
		authH:       handler.NewAuthHandler(store.NewUserStore(gw), logger.With("component", "auth")),
		feeH:        handler.NewFeeHandler(store.NewFeeStore(gw), hub, logger.With("component", "fee")),
		paymentH:    handler.NewPaymentHandler(store.NewPaymentStore(gw), notifier, hub, logger.With("component", "payment")),
		expenseH:    handler.NewExpenseHandler(store.NewExpenseStore(gw), hub, logger.With("component", "expense")),
		meetingH:    handler.NewMeetingHandler(store.NewMeetingStore(gw), hub, logger.With("component", "meeting")),
		employeeH:   handler.NewEmployeeHandler(store.NewEmployeeStore(gw), hub, logger.With("component", "employee")),
		vacationH:   handler.NewActivityHandler(store.NewVacationStore(gw), "vacation", hub, logger.With("component", "vacation")),
		leaveH:      handler.NewActivityHandler(store.NewLeaveStore(gw), "leave", hub, logger.With("component", "leave")),
		shiftH:      handler.NewShiftHandler(store.NewShiftStore(gw), hub, logger.With("component", "shift")),
		actionLogH:  handler.NewActionLogHandler(store.NewActionLogStore(gw), logger.With("component", "action_log")),
		rateLimiter: middleware.NewRateLimiter(),
		opts:        opts,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the change-feed hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	p := s.opts.APIPrefix

	mux.HandleFunc("GET "+p+"/health", handler.Health)
	mux.Handle("POST "+p+"/login", s.rateLimited(s.authH.Login))

	mux.HandleFunc("GET "+p+"/users", s.houseH.List)
	mux.HandleFunc("PUT "+p+"/users/{id}", s.houseH.Update)

	mux.HandleFunc("GET "+p+"/products", s.feeH.List)
	mux.HandleFunc("POST "+p+"/products", s.feeH.Create)
	mux.HandleFunc("PUT "+p+"/products/{id}", s.feeH.Update)
	mux.HandleFunc("DELETE "+p+"/products/{id}", s.feeH.Delete)

	s.registerReportRoutes(mux, p+"/reports")

	mux.HandleFunc("GET "+p+"/ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("/", handler.NotFound)

	var h http.Handler = metrics.InstrumentHandler(mux)
	h = cors.AllowAll().Handler(h)
	h = middleware.Recover(s.logger.With("component", "http"))(h)
	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) registerReportRoutes(mux *http.ServeMux, p string) {
	mux.HandleFunc("GET "+p+"/payments", s.paymentH.List)
	mux.HandleFunc("POST "+p+"/payments", s.paymentH.Create)
	mux.HandleFunc("DELETE "+p+"/payments/{id}", s.paymentH.Delete)

	mux.HandleFunc("GET "+p+"/expenses", s.expenseH.List)
	mux.HandleFunc("POST "+p+"/expenses", s.expenseH.Create)
	mux.HandleFunc("DELETE "+p+"/expenses/{id}", s.expenseH.Delete)

	mux.HandleFunc("GET "+p+"/meetings", s.meetingH.List)
	mux.HandleFunc("POST "+p+"/meetings", s.meetingH.Create)
	mux.HandleFunc("PUT "+p+"/meetings/{id}", s.meetingH.Update)
	mux.HandleFunc("DELETE "+p+"/meetings/{id}", s.meetingH.Delete)

	mux.HandleFunc("GET "+p+"/employees", s.employeeH.List)
	mux.HandleFunc("POST "+p+"/employees", s.employeeH.Create)
	mux.HandleFunc("PUT "+p+"/employees/{id}", s.employeeH.Update)

	mux.HandleFunc("GET "+p+"/vacations", s.vacationH.List)
	mux.HandleFunc("POST "+p+"/vacations", s.vacationH.Create)
	mux.HandleFunc("DELETE "+p+"/vacations/{id}", s.vacationH.Delete)

	mux.HandleFunc("GET "+p+"/leaves", s.leaveH.List)
	mux.HandleFunc("POST "+p+"/leaves", s.leaveH.Create)
	mux.HandleFunc("DELETE "+p+"/leaves/{id}", s.leaveH.Delete)

	mux.HandleFunc("GET "+p+"/shifts", s.shiftH.Get)
	mux.HandleFunc("POST "+p+"/shifts", s.shiftH.Save)

	mux.HandleFunc("GET "+p+"/logs", s.actionLogH.List)
}

func (s *Server) rateLimited(h http.HandlerFunc) http.Handler {
	onLimited := func(r *http.Request) {
		metrics.RecordLogin("limited")
		s.logger.Warn("login rate limited", "remote", middleware.RealIP(r))
	}
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, s.opts.LoginRateLimit, time.Minute, onLimited)
	return rl(h)
}

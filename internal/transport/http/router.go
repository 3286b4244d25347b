package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gymkit/gym-api/internal/application/account"
	"github.com/gymkit/gym-api/internal/application/dashboard"
	"github.com/gymkit/gym-api/internal/application/gym"
	"github.com/gymkit/gym-api/internal/application/member"
	"github.com/gymkit/gym-api/internal/application/plan"
	"github.com/gymkit/gym-api/internal/application/reminder"
	"github.com/gymkit/gym-api/internal/application/session"
	"github.com/gymkit/gym-api/internal/application/verification"
	"github.com/gymkit/gym-api/internal/config"
	"github.com/gymkit/gym-api/internal/domain"
	"github.com/gymkit/gym-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/gymkit/gym-api/internal/infrastructure/jwt"
	s3infra "github.com/gymkit/gym-api/internal/infrastructure/s3"
	"github.com/gymkit/gym-api/internal/infrastructure/smtp"
	"github.com/gymkit/gym-api/internal/infrastructure/sns"
	"github.com/gymkit/gym-api/internal/transport/http/handler"
	appmiddleware "github.com/gymkit/gym-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	SessionRepo      *dynamo.SessionRepo
	GymRepo          *dynamo.GymRepo
	PlanRepo         *dynamo.PlanRepo
	MemberRepo       *dynamo.MemberRepo
	VerificationRepo *dynamo.VerificationRepo
	PhotoStore       *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)
	// 1 request/second, burst of 3 — applied to the OTP endpoints.
	otpRL := appmiddleware.NewRateLimiter(rate.Limit(1), 3)

	accountSvc := account.NewService(account.ServiceDeps{
		UserRepo:        deps.UserRepo,
		GymRepo:         deps.GymRepo,
		SessionRepo:     deps.SessionRepo,
		JWTProvider:     deps.JWTProvider,
		RefreshTokenDur: cfg.RefreshTokenDur,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo:     deps.SessionRepo,
		UserRepo:        deps.UserRepo,
		JWTProvider:     deps.JWTProvider,
		RefreshTokenDur: cfg.RefreshTokenDur,
	})
	verificationSvc := verification.NewService(verification.ServiceDeps{
		VerificationRepo: deps.VerificationRepo,
		Mailer:           deps.Mailer,
	})
	gymSvc := gym.NewService(deps.GymRepo)
	planSvc := plan.NewService(deps.PlanRepo)
	memberSvc := member.NewService(member.ServiceDeps{
		MemberRepo: deps.MemberRepo,
		PlanRepo:   deps.PlanRepo,
		Photos:     deps.PhotoStore,
	})
	dashboardSvc := dashboard.NewService(deps.MemberRepo, deps.PlanRepo)
	reminderSvc := reminder.NewService(deps.MemberRepo, deps.GymRepo, deps.SMSSender)

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	verificationH := handler.NewVerificationHandler(verificationSvc)
	gymH := handler.NewGymHandler(gymSvc)
	planH := handler.NewPlanHandler(planSvc)
	memberH := handler.NewMemberHandler(memberSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	reminderH := handler.NewReminderHandler(reminderSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/accounts", accountH.Register)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.Post("/sessions/refresh", sessionH.Refresh)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/accounts/me", accountH.Get)
			r.Post("/accounts/change-password", accountH.ChangePassword)

			r.With(otpRL.Limit).Post("/email-verification/send", verificationH.Send)
			r.With(otpRL.Limit).Post("/email-verification/verify", verificationH.Verify)

			r.Get("/gym", gymH.Get)
			r.Put("/gym", gymH.Update)

			r.Get("/plans", planH.List)
			r.Post("/plans", planH.Create)
			r.Get("/plans/{id}", planH.Get)
			r.Put("/plans/{id}", planH.Update)
			r.Delete("/plans/{id}", planH.Delete)

			r.Get("/members", memberH.List)
			r.Post("/members", memberH.Create)
			r.Get("/members/{id}", memberH.Get)
			r.Put("/members/{id}", memberH.Update)
			r.Delete("/members/{id}", memberH.Delete)
			r.Post("/members/{id}/renew", memberH.Renew)
			r.Post("/members/{id}/photo", memberH.UploadPhoto)
			r.Get("/members/{id}/photo", memberH.PhotoURL)

			r.Get("/dashboard", dashboardH.Stats)
			r.Post("/reminders/expiring", reminderH.SendExpiring)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/admin/gyms", gymH.List)
			})
		})
	})

	return r
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	adapthttp "habitkit/internal/adapter/http"
	"habitkit/internal/adapter/postgres"
	"habitkit/internal/agent"
	"habitkit/internal/app"
)

func main() {
	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := postgres.Open(connStr)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	habitSvc := app.NewHabitService(db, db)
	categorySvc := app.NewCategoryService(db)
	dashboardSvc := app.NewDashboardService(db, db)
	authSvc := app.NewAuthService(db, db.NewSessionRepo())

	ctx := context.Background()

	var dispatcher *agent.Dispatcher
	var coach *agent.Coach
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gem, err := agent.NewGemini(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("gemini client: %v", err)
		}
		dispatcher = agent.NewDispatcher(gem, db, db, habitSvc)
		coach = agent.NewCoach(gem)
	} else {
		log.Print("GEMINI_API_KEY not set, agent routes disabled")
	}

	oidcConfig := loadOIDC(ctx)
	disableAuth := os.Getenv("DISABLE_AUTH") == "true"
	if disableAuth {
		log.Print("authentication disabled")
	}

	srv := adapthttp.New(habitSvc, categorySvc, dashboardSvc, authSvc,
		dispatcher, coach, oidcConfig, webDir, disableAuth)

	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func loadOIDC(ctx context.Context) adapthttp.OIDCConfig {
	issuer := os.Getenv("OIDC_ISSUER")
	if issuer == "" {
		return adapthttp.OIDCConfig{}
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		log.Fatalf("oidc provider: %v", err)
	}

	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"habitkit/internal/agent"
	"habitkit/internal/app"
)

// OIDCConfig holds the optional single sign-on configuration. When Enabled
// is false the SSO routes answer 404.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	habits      *app.HabitService
	categories  *app.CategoryService
	dashboard   *app.DashboardService
	authSvc     *app.AuthService
	dispatcher  *agent.Dispatcher
	coach       *agent.Coach
	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services. dispatcher
// and coach may be nil, in which case the agent routes answer 503.
func New(hs *app.HabitService, cs *app.CategoryService, ds *app.DashboardService,
	as *app.AuthService, dispatcher *agent.Dispatcher, coach *agent.Coach,
	oidcConfig OIDCConfig, webDir string, disableAuth bool) *Server {
	return &Server{
		habits:      hs,
		categories:  cs,
		dashboard:   ds,
		authSvc:     as,
		dispatcher:  dispatcher,
		coach:       coach,
		oidcConfig:  oidcConfig,
		webDir:      webDir,
		disableAuth: disableAuth,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	protected := http.NewServeMux()
	protected.HandleFunc("/habits", s.handleHabits)
	protected.HandleFunc("/habits/update", s.handleHabitUpdate)
	protected.HandleFunc("/habits/delete", s.handleHabitDelete)
	protected.HandleFunc("/habits/report", s.handleHabitReport)
	protected.HandleFunc("/habits/reset", s.handleHabitReset)

	protected.HandleFunc("/categories", s.handleCategories)
	protected.HandleFunc("/categories/update", s.handleCategoryUpdate)
	protected.HandleFunc("/categories/delete", s.handleCategoryDelete)

	protected.HandleFunc("/dashboard/daily", s.handleDashboardDaily)

	protected.HandleFunc("/agent", s.handleAgent)
	protected.HandleFunc("/coach", s.handleCoach)

	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/login", s.handleLogin)
	api.HandleFunc("/logout", s.handleLogout)
	api.HandleFunc("/setup", s.handleSetupUser)
	api.HandleFunc("/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}

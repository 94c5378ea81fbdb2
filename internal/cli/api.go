package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/api"
	"github.com/AI2HU/gdc/internal/logger"
)

var (
	apiPort    int
	apiHost    string
	corsOrigin string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the gdc REST API server",
	Long: `Start the REST API the showcase front end reads from:
- Episodes (catalog, featured episode, next/previous navigation)
- Views (read the view figure, record a view)
- Analytics (daily series, episodes, states, traffic, overview, dashboard)

The API runs on HTTP without authentication.`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().IntVarP(&apiPort, "port", "p", 0, "Port to run the API server on (overrides config)")
	apiCmd.Flags().StringVarP(&apiHost, "host", "H", "", "Host to bind the API server to (overrides config)")
	apiCmd.Flags().StringVarP(&corsOrigin, "cors-origin", "c", "", "CORS origin to allow (overrides config file, use '*' for all origins)")
}

func runAPI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	host := firstNonEmpty(apiHost, cfg.API.Host, "0.0.0.0")
	port := cfg.API.Port
	if apiPort != 0 {
		port = apiPort
	}
	origin := firstNonEmpty(corsOrigin, cfg.API.CORSOrigin, "*")

	if err := connectStore(ctx); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	banner(w, "🚀 Starting gdc API Server")
	fmt.Fprintf(w, "%s\n", FormatLabelValue("Host:", host))
	fmt.Fprintf(w, "%s\n", FormatLabelValue("Port:", fmt.Sprintf("%d", port)))
	fmt.Fprintf(w, "%s\n", FormatLabelValue("CORS Origin:", origin))
	fmt.Fprintf(w, "%s\n", FormatLabelValue("Counter store:", store.Name()))
	fmt.Fprintf(w, "%s\n\n", FormatLabelValue("URL:", fmt.Sprintf("http://%s:%d/api/v1", host, port)))

	if logger.IsDebugEnabled() {
		gin.DefaultWriter = logger.Get().Writer()
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(store, dashboardService, episodeService, api.Options{
		CORSOrigin: origin,
		RateLimit:  cfg.API.RateLimit,
		RateBurst:  cfg.API.RateBurst,
	})
	defer server.Close()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintln(w, "📚 Available Endpoints:")
	fmt.Fprintln(w, "    GET    /api/v1/health                 - Health check")
	fmt.Fprintln(w, "    GET    /api/v1/episodes               - List episodes (?state=playable|coming_soon)")
	fmt.Fprintln(w, "    GET    /api/v1/episodes/featured      - Featured episode")
	fmt.Fprintln(w, "    GET    /api/v1/episodes/:id           - Get episode")
	fmt.Fprintln(w, "    GET    /api/v1/episodes/:id/next      - Next playable episode")
	fmt.Fprintln(w, "    GET    /api/v1/episodes/:id/previous  - Previous playable episode")
	fmt.Fprintln(w, "    GET    /api/v1/episodes/:id/views     - View figure")
	fmt.Fprintln(w, "    POST   /api/v1/episodes/:id/views     - Record a view")
	fmt.Fprintln(w, "    GET    /api/v1/analytics/dashboard    - Whole dashboard")
	fmt.Fprintln(w, "    GET    /api/v1/analytics/{daily,episodes,states,traffic,overview}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	case <-sigChan:
		fmt.Fprintln(w, "\n🛑 Shutting down API server...")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

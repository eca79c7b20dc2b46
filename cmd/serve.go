package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eve.evalgo.org/common"
	evehttp "eve.evalgo.org/http"
	"eve.evalgo.org/registry"
	"eve.evalgo.org/statemanager"
	"eve.evalgo.org/tracing"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"evalgo.org/lakeservice/auth"
	"evalgo.org/lakeservice/internal/command"
	"evalgo.org/lakeservice/internal/executor"
	lakeversion "evalgo.org/lakeservice/internal/version"
)

// Global service state, initialized once in runServe
var (
	stateManager *statemanager.Manager

	cmdBuilder     *command.Builder
	cmdBuilderErr  error
	versionReso    *lakeversion.Resolver
	cmdRunner      *executor.Runner
	runHistory     *executor.History
	auditLogger    *auth.AuditLogger
	fastbcpDirPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LakeXpress service",
	Long: `Start the LakeXpress service API server.

The service wraps the LakeXpress data-export CLI behind a REST API with a
two-step preview/execute flow: every command is first built and rendered for
review, and only an explicitly confirmed command string is executed.

Environment Variables:
  - LAKESERVICE_PORT: Port to listen on (default: 8080)
  - LAKESERVICE_URL: Public URL of this service (default: http://hostname:port)
  - LAKESERVICE_REGISTRY_URL: Registry service URL (default: http://localhost:8096)
  - LAKESERVICE_API_KEY: Optional API key for endpoint protection
  - LAKEXPRESS_PATH: Path to the LakeXpress binary (default: /usr/local/bin/LakeXpress)
  - LAKEXPRESS_TIMEOUT: Execution timeout in seconds (default: 3600)
  - LAKEXPRESS_LOG_DIR: Directory for per-run execution logs
  - FASTBCP_DIR_PATH: Default FastBCP directory, auto-filled into requests
  - AUTH_MODE: none, simple or rbac (default: none)
  - DATA_DIR: Directory for users, runs and audit data (default: ./data)
  - JWT_SECRET: Secret for signing session tokens`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("service-url", "", "Public URL of this service")
	serveCmd.Flags().String("registry-url", "", "Registry service URL")
	serveCmd.Flags().String("api-key", "", "API key for endpoint protection")
	serveCmd.Flags().String("binary", "", "Path to the LakeXpress binary")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")
}

func runServe(cmd *cobra.Command, args []string) {
	// Load configuration from environment
	serverConfig := evehttp.DefaultServerConfig()
	serverConfig.Port = common.GetEnvInt("LAKESERVICE_PORT", 8080)
	serverConfig.Debug = common.GetEnvBool("LAKESERVICE_DEBUG", false)

	serviceURL := common.GetEnv("LAKESERVICE_URL", "")
	registryURL := common.GetEnv("LAKESERVICE_REGISTRY_URL", "http://localhost:8096")
	apiKey := common.GetEnv("LAKESERVICE_API_KEY", "")
	binaryPath := common.GetEnv("LAKEXPRESS_PATH", "/usr/local/bin/LakeXpress")
	execTimeout := common.GetEnvInt("LAKEXPRESS_TIMEOUT", 3600)
	logDir := common.GetEnv("LAKEXPRESS_LOG_DIR", "")
	fastbcpDirPath = common.GetEnv("FASTBCP_DIR_PATH", "")
	dataDir := common.GetEnv("DATA_DIR", "./data")

	// Override from flags if provided
	if flagPort, _ := cmd.Flags().GetInt("port"); flagPort != 0 {
		serverConfig.Port = flagPort
	}
	if flagURL, _ := cmd.Flags().GetString("service-url"); flagURL != "" {
		serviceURL = flagURL
	}
	if flagRegistry, _ := cmd.Flags().GetString("registry-url"); flagRegistry != "" {
		registryURL = flagRegistry
	}
	if flagKey, _ := cmd.Flags().GetString("api-key"); flagKey != "" {
		apiKey = flagKey
	}
	if flagBinary, _ := cmd.Flags().GetString("binary"); flagBinary != "" {
		binaryPath = flagBinary
	}
	if flagDebug, _ := cmd.Flags().GetBool("debug"); flagDebug {
		serverConfig.Debug = true
	}

	if serviceURL == "" {
		serviceURL = fmt.Sprintf("http://%s:%d", serviceHostname(), serverConfig.Port)
	}

	// Setup structured logging
	logger := common.ServiceLogger("lakexpress-service", "1.0.0")
	logger.Info("=====================================")
	logger.Info("LakeXpress Service Starting")
	logger.Info("=====================================")
	logger.WithFields(map[string]interface{}{
		"service_url":  serviceURL,
		"registry_url": registryURL,
		"port":         serverConfig.Port,
		"binary":       binaryPath,
		"timeout_s":    execTimeout,
		"debug":        serverConfig.Debug,
		"api_key_set":  apiKey != "",
	}).Info("Configuration loaded")

	// Command builder validates the binary up front. A missing binary is not
	// fatal: validation-only endpoints keep working and preview/execute
	// report the configuration problem.
	cmdBuilder, cmdBuilderErr = command.NewBuilder(binaryPath)
	if cmdBuilderErr != nil {
		logger.WithError(cmdBuilderErr).Warn("LakeXpress binary unavailable, preview/execute disabled")
	}

	// Version detection is lazy and happens at most once
	versionReso = lakeversion.NewResolver(lakeversion.DefaultRegistry(), lakeversion.NewDetector(binaryPath))

	cmdRunner = executor.NewRunner(time.Duration(execTimeout)*time.Second, logDir)

	var err error
	runHistory, err = executor.NewHistory(dataDir)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize run history")
	}
	auditLogger, err = auth.NewAuditLogger(dataDir)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize audit logger")
	}

	if err := InitializeAuth(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize authentication")
	}

	// Initialize state manager
	stateManager = statemanager.New(statemanager.Config{
		ServiceName:   "lakeservice",
		MaxOperations: 100,
	})

	// Create Echo server with EVE http utilities
	e := evehttp.NewEchoServer(serverConfig)
	e.Use(evehttp.SecurityHeadersMiddleware())

	// Initialize tracing (gracefully disabled if unavailable)
	if tracer := tracing.Init(tracing.InitConfig{
		ServiceID:        "lakeservice",
		DisableIfMissing: true,
	}); tracer != nil {
		e.Use(tracer.Middleware())
	}

	apiGroup := e.Group("/v1/api")
	stateManager.RegisterRoutes(apiGroup)

	var apiKeyMiddleware echo.MiddlewareFunc
	if apiKey != "" {
		apiKeyMiddleware = evehttp.APIKeyMiddleware(apiKey)
	}
	registerAPIEndpoints(apiGroup, apiKeyMiddleware)

	// Login endpoint is always public
	e.POST("/auth/login", loginHandler)

	// Health check endpoint using EVE utilities (always public)
	e.GET("/health", evehttp.HealthCheckHandler("lakexpress-service", "v1"))

	// Documentation endpoint
	e.GET("/v1/api/docs", evehttp.DocumentationHandler(evehttp.ServiceDocConfig{
		ServiceID:   "lakeservice",
		ServiceName: "LakeXpress Service",
		Description: "Database-to-lakehouse export management via the LakeXpress CLI",
		Version:     "v1",
		Port:        serverConfig.Port,
		Capabilities: []string{
			"command-preview", "command-execute", "authfile-validation",
			"capability-catalog", "workflow-suggestion", "run-history",
		},
		Endpoints: []evehttp.EndpointDoc{
			{
				Method:      "POST",
				Path:        "/v1/api/command/preview",
				Description: "Validate a request and preview the exact LakeXpress command line",
			},
			{
				Method:      "POST",
				Path:        "/v1/api/command/execute",
				Description: "Execute a previously previewed command (requires explicit confirmation)",
			},
			{
				Method:      "GET",
				Path:        "/v1/api/runs",
				Description: "List recorded LakeXpress runs",
			},
			{
				Method:      "POST",
				Path:        "/v1/api/authfile/validate",
				Description: "Validate a LakeXpress credentials file",
			},
			{
				Method:      "GET",
				Path:        "/v1/api/capabilities",
				Description: "List supported databases, backends, targets, codecs and commands",
			},
			{
				Method:      "POST",
				Path:        "/v1/api/workflow/suggest",
				Description: "Recommend an ordered command workflow for a use case",
			},
			{
				Method:      "GET",
				Path:        "/health",
				Description: "Health check endpoint",
			},
		},
	}))

	// Start server in goroutine
	go func() {
		logger.WithFields(map[string]interface{}{
			"port":             serverConfig.Port,
			"preview_endpoint": fmt.Sprintf("%s/v1/api/command/preview", serviceURL),
			"health_endpoint":  fmt.Sprintf("%s/health", serviceURL),
		}).Info("Starting HTTP server")

		if err := evehttp.StartServer(e, serverConfig); err != nil {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for server to be ready
	time.Sleep(500 * time.Millisecond)

	// Register with the registry service for discovery
	registryClient := registry.NewClient(registry.ClientConfig{
		RegistryURL: registryURL,
		Timeout:     10 * time.Second,
	})

	ctx := context.Background()
	hostname := serviceHostname()

	err = registryClient.Register(ctx, registry.ServiceConfig{
		ServiceID:   fmt.Sprintf("lakexpress-service-%s", hostname),
		ServiceName: fmt.Sprintf("LakeXpress Service - %s", hostname),
		ServiceURL:  serviceURL,
		Version:     "v1",
		Hostname:    hostname,
		ServiceType: "lakexpress",
		Capabilities: []string{
			"command-preview", "command-execute", "authfile-validation",
			"capability-catalog", "workflow-suggestion", "run-history",
		},
		Properties: map[string]interface{}{
			"previewEndpoint": fmt.Sprintf("%s/v1/api/command/preview", serviceURL),
			"healthEndpoint":  fmt.Sprintf("%s/health", serviceURL),
			"documentation":   fmt.Sprintf("%s/v1/api/docs", serviceURL),
		},
	})

	if err != nil {
		logger.WithError(err).Warn("Failed to register with registry, service will continue without registration")
	} else {
		logger.Info("Successfully registered with registry service")
		cancelHeartbeat := registryClient.StartHeartbeat(ctx, 30*time.Second)
		defer cancelHeartbeat()
	}

	logger.Info("Service is ready. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down service...")

	if err := registryClient.Deregister(context.Background()); err != nil {
		logger.WithError(err).Warn("Failed to deregister from registry")
	} else {
		logger.Info("Successfully deregistered from registry")
	}

	if err := evehttp.GracefulShutdown(e, serverConfig.ShutdownTimeout); err != nil {
		logger.WithError(err).Error("Error during graceful shutdown")
	}

	logger.Info("Service stopped")
}

func serviceHostname() string {
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		var err error
		hostname, err = os.Hostname()
		if err != nil {
			hostname = "localhost"
		}
	}
	return hostname
}

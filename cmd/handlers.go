package cmd

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"evalgo.org/lakeservice/auth"
	"evalgo.org/lakeservice/internal/authfile"
	"evalgo.org/lakeservice/internal/command"
	"evalgo.org/lakeservice/internal/domain"
	"evalgo.org/lakeservice/internal/executor"
	lakeversion "evalgo.org/lakeservice/internal/version"
	"evalgo.org/lakeservice/internal/workflow"
)

// PreviewResponse is returned by the command preview endpoint.
type PreviewResponse struct {
	Command         []string `json:"command"`
	FullCommand     string   `json:"full_command"`
	Display         string   `json:"display"`
	Explanation     string   `json:"explanation"`
	Warnings        []string `json:"warnings,omitempty"`
	DetectedVersion string   `json:"detected_version,omitempty"`
}

// ExecuteRequest is the body of the command execute endpoint. Command is the
// full command string from a preview; Confirmation must be true.
type ExecuteRequest struct {
	Command      string `json:"command"`
	Confirmation bool   `json:"confirmation"`
}

// ExecuteResponse is returned after a command run completes.
type ExecuteResponse struct {
	RunID    string `json:"run_id"`
	Success  bool   `json:"success"`
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Duration string `json:"duration"`
	LogFile  string `json:"log_file,omitempty"`
}

// AuthFileRequest is the body of the credential file validation endpoint.
type AuthFileRequest struct {
	FilePath        string   `json:"file_path"`
	RequiredAuthIDs []string `json:"required_auth_ids,omitempty"`
}

// WorkflowRequest is the body of the workflow suggestion endpoint.
type WorkflowRequest struct {
	SourceType    string `json:"source_type"`
	Destination   string `json:"destination"`
	PublishTarget string `json:"publish_target,omitempty"`
}

// registerAPIEndpoints wires the LakeXpress API routes into the group.
// The execute endpoint additionally requires an authenticated user when
// AUTH_MODE is not "none".
func registerAPIEndpoints(g *echo.Group, apiKeyMiddleware echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if apiKeyMiddleware != nil {
		mw = append(mw, apiKeyMiddleware)
	}

	g.POST("/command/preview", previewCommandHandler, mw...)
	g.POST("/command/execute", executeCommandHandler, append(mw, AuthMiddleware(getAuthMode()))...)
	g.GET("/runs", listRunsHandler, mw...)
	g.GET("/runs/:id", getRunHandler, mw...)
	g.POST("/authfile/validate", validateAuthFileHandler, mw...)
	g.GET("/capabilities", capabilitiesHandler, mw...)
	g.POST("/workflow/suggest", suggestWorkflowHandler, mw...)
	g.GET("/version", versionHandler, mw...)

	registerUserEndpoints(g, mw...)
}

// previewCommandHandler validates a request and renders the exact command
// line that would run, together with advisory warnings.
func previewCommandHandler(c echo.Context) error {
	if cmdBuilder == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error":  "LakeXpress binary not found or not accessible",
			"detail": cmdBuilderErr.Error(),
		})
	}

	var req domain.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body: " + err.Error(),
		})
	}

	autofillFastBCPDir(&req)

	if err := req.Validate(); err != nil {
		if verrs, ok := err.(*domain.ValidationErrors); ok {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":  "validation failed",
				"fields": verrs.Errors,
			})
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
	}

	tokens, err := cmdBuilder.Build(&req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
	}

	resp := PreviewResponse{
		Command:     tokens,
		FullCommand: strings.Join(tokens, " "),
		Display:     command.FormatDisplay(tokens),
		Explanation: command.Explain(&req),
		Warnings:    command.Advise(&req, versionReso.Capabilities()),
	}
	if v := versionReso.Detected(); v != nil {
		resp.DetectedVersion = v.String()
	}

	logAudit(c, currentUsername(c), auth.ActionPreview, resp.FullCommand, true, "")

	return c.JSON(http.StatusOK, resp)
}

// executeCommandHandler runs a previously previewed command. The command
// string must start with the configured binary path and confirmation must be
// explicitly set; construction and execution stay two separate steps.
func executeCommandHandler(c echo.Context) error {
	if cmdBuilder == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error":  "LakeXpress binary not found or not accessible",
			"detail": cmdBuilderErr.Error(),
		})
	}

	// Under rbac, running the export tool is an admin privilege
	if getAuthMode() == auth.AuthModeRBAC {
		if role, _ := c.Get("role").(string); role != auth.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required to execute commands")
		}
	}

	var req ExecuteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body: " + err.Error(),
		})
	}

	if !req.Confirmation {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "confirmation must be set to true to execute a command",
		})
	}
	if req.Command == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "no command provided; use the preview endpoint first",
		})
	}

	tokens, err := executor.SplitCommand(req.Command)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "failed to parse command: " + err.Error(),
		})
	}
	if len(tokens) == 0 || tokens[0] != cmdBuilder.BinaryPath() {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "command must invoke the configured LakeXpress binary",
		})
	}

	username := currentUsername(c)
	started := time.Now()
	result, err := cmdRunner.Run(c.Request().Context(), tokens)
	if err != nil {
		logAudit(c, username, auth.ActionExecute, req.Command, false, err.Error())
		if execErr, ok := err.(*domain.ExecutionError); ok && execErr.Timeout {
			return c.JSON(http.StatusGatewayTimeout, map[string]interface{}{"error": execErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
	}

	run, err := runHistory.Record(tokens, result, username, started)
	if err != nil {
		// The command already ran; losing the history entry is reported but
		// does not fail the request.
		c.Logger().Errorf("failed to record run: %v", err)
		run = &executor.Run{}
	}

	logAudit(c, username, auth.ActionExecute, req.Command, result.Success(), "")

	return c.JSON(http.StatusOK, ExecuteResponse{
		RunID:    run.ID,
		Success:  result.Success(),
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
		Duration: result.Duration.String(),
		LogFile:  result.LogFile,
	})
}

// listRunsHandler returns recorded runs, newest first.
func listRunsHandler(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := runHistory.List(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// getRunHandler returns one recorded run by id.
func getRunHandler(c echo.Context) error {
	run, err := runHistory.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, run)
}

// validateAuthFileHandler checks a LakeXpress credentials file.
func validateAuthFileHandler(c echo.Context) error {
	var req AuthFileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body: " + err.Error(),
		})
	}
	if req.FilePath == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "file_path is required",
		})
	}

	return c.JSON(http.StatusOK, authfile.Validate(req.FilePath, req.RequiredAuthIDs))
}

// capabilitiesHandler returns the capability set resolved for the detected
// LakeXpress version plus the static catalog.
func capabilitiesHandler(c echo.Context) error {
	caps := versionReso.Capabilities()

	resp := map[string]interface{}{
		"catalog":           lakeversion.SupportedCatalog(),
		"source_databases":  lakeversion.SortedStrings(caps.SourceDatabases),
		"log_databases":     lakeversion.SortedStrings(caps.LogDatabases),
		"storage_backends":  lakeversion.SortedStrings(caps.StorageBackends),
		"publish_targets":   lakeversion.SortedStrings(caps.PublishTargets),
		"compression_types": lakeversion.SortedStrings(caps.CompressionTypes),
		"commands":          lakeversion.SortedCommands(caps.Commands),
		"features": map[string]bool{
			"no_banner":    caps.SupportsNoBanner,
			"version_flag": caps.SupportsVersionFlag,
			"incremental":  caps.SupportsIncremental,
			"cleanup":      caps.SupportsCleanup,
		},
	}
	if v := versionReso.Detected(); v != nil {
		resp["detected_version"] = v.String()
	} else {
		resp["detected_version"] = nil
	}

	return c.JSON(http.StatusOK, resp)
}

// suggestWorkflowHandler recommends an ordered command sequence.
func suggestWorkflowHandler(c echo.Context) error {
	var req WorkflowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body: " + err.Error(),
		})
	}
	if req.SourceType == "" || req.Destination == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "source_type and destination are required",
		})
	}

	return c.JSON(http.StatusOK, workflow.Suggest(req.SourceType, req.Destination, req.PublishTarget))
}

// versionHandler reports the service build and the detected binary version.
func versionHandler(c echo.Context) error {
	resp := map[string]interface{}{
		"service_version": version,
		"commit":          commit,
		"build_date":      date,
	}
	if cmdBuilder != nil {
		resp["binary_path"] = cmdBuilder.BinaryPath()
	}
	if v := versionReso.Detected(); v != nil {
		resp["lakexpress_version"] = v.String()
		resp["detected"] = true
	} else {
		resp["lakexpress_version"] = nil
		resp["detected"] = false
	}
	return c.JSON(http.StatusOK, resp)
}

// autofillFastBCPDir fills the FastBCP directory from FASTBCP_DIR_PATH for
// the variants that accept it, when the request does not set one.
func autofillFastBCPDir(req *domain.Request) {
	if fastbcpDirPath == "" {
		return
	}
	if req.ConfigCreate != nil && req.ConfigCreate.FastBCPDirPath == "" {
		req.ConfigCreate.FastBCPDirPath = fastbcpDirPath
	}
	if req.Sync != nil && req.Sync.FastBCPDirPath == "" {
		req.Sync.FastBCPDirPath = fastbcpDirPath
	}
	if req.SyncExport != nil && req.SyncExport.FastBCPDirPath == "" {
		req.SyncExport.FastBCPDirPath = fastbcpDirPath
	}
}

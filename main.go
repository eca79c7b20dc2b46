// Package main provides the entry point for the LakeXpress service application.
//
// LakeXpress Service is an HTTP adapter for the LakeXpress data-export CLI.
// It turns structured JSON requests into validated LakeXpress command lines,
// previews them for operator review, and executes confirmed commands against
// a local LakeXpress installation.
//
// The service supports:
//   - Command preview with validation, rendering and compatibility warnings
//   - Two-step confirmed execution with per-run log capture
//   - Authentication file validation
//   - Capability reporting for the detected LakeXpress version
//   - Workflow suggestions for common export pipelines
//   - API key and optional JWT user authentication
//
// Usage:
//
//	lakeservice serve [flags]
//
// Environment Variables:
//   - API_KEY: Required API key for authentication
//   - LAKESERVICE_PORT: HTTP server port (default: 8080)
//   - LAKEXPRESS_PATH: Path to the LakeXpress binary
//
// Example:
//
//	export API_KEY=your-secret-key
//	export LAKEXPRESS_PATH=/usr/local/bin/LakeXpress
//	lakeservice serve --port 8080
package main

import "evalgo.org/lakeservice/cmd"

// main is the application entry point that delegates to the cobra command structure.
func main() {
	_ = cmd.Execute()
}

// Package driving holds the inbound port of profilerag: ProfileService, the
// query surface that the CLI, TUI and MCP adapters call.
//
// ProfileService is implemented by services.ProfileService.
package driving

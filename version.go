// Package cargomcp holds shared metadata for the cargo MCP server.
package cargomcp

// Version is the server version reported to MCP clients.
const Version = "0.2.0"

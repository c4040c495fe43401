// Package types holds the JSON payloads exchanged by the sigd HTTP API and CLI.
package types

// Package cli wires configuration, logging, the signal registry and the HTTP
// API into the sigd command tree.
package cli

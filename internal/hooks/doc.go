// Package hooks installs declarative listeners, read from configuration, into
// a signals.Registry. Each hook runs one built-in action when its signal is
// emitted: log the payload, count the firing, or fail with a fixed message.
package hooks

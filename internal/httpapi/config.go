package httpapi

import "sigd/internal/config"

// maxBodyBytes caps emit payloads; oversized bodies get 413.
var maxBodyBytes = config.DefaultMaxBodyBytes

// SetMaxBodyBytes sets the emit payload cap. n <= 0 restores the default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		n = config.DefaultMaxBodyBytes
	}
	maxBodyBytes = n
}

// corsConfig is applied by NewMux. The middleware is only mounted when Enabled.
var corsConfig config.CORS

// SetCORS configures the CORS middleware for muxes built afterwards.
func SetCORS(c config.CORS) {
	corsConfig = config.CORS{
		Enabled:        c.Enabled,
		AllowedOrigins: append([]string(nil), c.AllowedOrigins...),
		AllowedMethods: append([]string(nil), c.AllowedMethods...),
		AllowedHeaders: append([]string(nil), c.AllowedHeaders...),
	}
}

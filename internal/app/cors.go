package app

import (
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/rahmasleam/NexusMenaV2/internal/config"
)

func buildCORSConfig(cfg *config.AppConfig) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "x-nexus-cache"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && cfg.IsProduction() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	return corsConfig
}

// extractOriginHost returns the "host[:port]" portion of an origin URL.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern reports whether host matches the given wildcard pattern.
func matchOriginPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		suffix := pattern[1:]
		return strings.HasSuffix(host, suffix)
	}
	if strings.HasSuffix(pattern, ":*") {
		prefix := pattern[:len(pattern)-1]
		return strings.HasPrefix(host, prefix)
	}
	return false
}

package env

import "os"

// Get returns the value of the given environment variable or a fallback.
// The FFL_-prefixed form wins when both are set so deployments can scope
// overrides to this service.
func Get(key, fallback string) string {
	if val := os.Getenv("FFL_" + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

package config

import (
	"fmt"
	"strings"

	"github.com/brandon-wee/jobdash/internal/apperr"
)

// Validate checks the variables every authenticated view depends on.
// Fail-fast: the server must not start with any of these missing, since all
// data access is scoped by the hash secret and routed to the store and backend.
func Validate() error {
	missing := []string{}

	db := LoadDBConfig()
	if db.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if db.User == "" {
		missing = append(missing, "DB_USER")
	}
	if db.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if LoadHashConfig().Secret == "" {
		missing = append(missing, "HASH_SECRET")
	}
	if LoadBackendConfig().URL == "" {
		missing = append(missing, "BACKEND_URL")
	}

	if len(missing) > 0 {
		return apperr.Configuration(fmt.Sprintf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}
	return nil
}

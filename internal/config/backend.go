package config

import (
	"os"
	"sync"
)

// BackendConfig points at the external analysis service (similarity scoring,
// cover letters, skills recommendation).
type BackendConfig struct {
	URL string
}

var (
	backendConfig *BackendConfig
	backendOnce   sync.Once
)

func LoadBackendConfig() *BackendConfig {
	backendOnce.Do(func() {
		backendConfig = &BackendConfig{
			URL: os.Getenv("BACKEND_URL"),
		}
	})
	return backendConfig
}

package config

import (
	"os"
	"sync"
)

type HashConfig struct {
	Secret string
}

var (
	hashConfig *HashConfig
	hashOnce   sync.Once
)

func LoadHashConfig() *HashConfig {
	hashOnce.Do(func() {
		hashConfig = &HashConfig{
			Secret: os.Getenv("HASH_SECRET"),
		}
	})
	return hashConfig
}

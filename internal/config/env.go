package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnv overrides fields from DIVIMAP_* variables. The API key is looked up
// in DIVIMAP_API_KEY and then OPENROUTER_API_KEY.
func (c *Config) ApplyEnv() {
	c.Provider = getenv("DIVIMAP_PROVIDER", c.Provider)
	c.Model = getenv("DIVIMAP_MODEL", c.Model)
	c.BaseURL = getenv("DIVIMAP_BASE_URL", c.BaseURL)
	c.Dataset = getenv("DIVIMAP_DATASET", c.Dataset)
	c.Timeout = getduration("DIVIMAP_TIMEOUT", c.Timeout)
	c.Zoom = getint("DIVIMAP_ZOOM", c.Zoom)
	c.Listen = getenv("DIVIMAP_LISTEN", c.Listen)
	c.Log.Level = getenv("DIVIMAP_LOG_LEVEL", c.Log.Level)
	c.Log.Console = getbool("DIVIMAP_LOG_CONSOLE", c.Log.Console)

	for _, k := range []string{"DIVIMAP_API_KEY", "OPENROUTER_API_KEY"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			c.APIKey = v
			c.keyEnv = k
			break
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

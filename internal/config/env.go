package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays TASKLOG_* environment variables on base. Empty or
// unparsable values are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKLOG_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKLOG_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("TASKLOG_LOCALE"); ok {
		cfg.Locale = v
	}
	if v, ok := getEnvString("TASKLOG_PLANNER_URL"); ok {
		cfg.Planner.URL = v
	}
	if v, ok := getEnvString("TASKLOG_PLANNER_MODEL"); ok {
		cfg.Planner.Model = v
	}
	if v, ok := getEnvString("TASKLOG_PLANNER_API_KEY"); ok {
		cfg.Planner.APIKey = v
	}
	if v, ok := getEnvBool("TASKLOG_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TASKLOG_ITEM_HEIGHT"); ok && v > 0 {
		cfg.ItemHeight = v
	}
	if v, ok := getEnvInt("TASKLOG_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

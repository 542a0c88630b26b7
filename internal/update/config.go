package update

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/taskquest/internal/focus"
	"github.com/sandeepkv93/taskquest/internal/game"
	"github.com/sandeepkv93/taskquest/internal/model"
)

type RuntimeConfig struct {
	DatabasePath string `toml:"database_path"`
	LogFile      string `toml:"log_file"`
	LogLevel     string `toml:"log_level"`
	LogFormat    string `toml:"log_format"`

	PointsPerTask int    `toml:"points_per_task"`
	FilterByWorld bool   `toml:"filter_by_world"`
	StartingLives int    `toml:"starting_lives"`
	Saga          string `toml:"saga"`

	FightDwellMs        int `toml:"fight_dwell_ms"`
	JumpMs              int `toml:"jump_ms"`
	MushroomTimeoutMs   int `toml:"mushroom_timeout_ms"`
	MushroomAnimationMs int `toml:"mushroom_animation_ms"`

	FocusWorkMinutes       int `toml:"focus_work_minutes"`
	FocusShortBreakMinutes int `toml:"focus_short_break_minutes"`
	FocusLongBreakMinutes  int `toml:"focus_long_break_minutes"`

	SchedulerBuffer int `toml:"scheduler_buffer"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:           "taskquest.db",
		LogLevel:               "info",
		LogFormat:              "text",
		PointsPerTask:          game.DefaultPointsPerTask,
		FilterByWorld:          true,
		StartingLives:          3,
		Saga:                   string(model.DefaultSaga),
		FightDwellMs:           3000,
		JumpMs:                 500,
		MushroomTimeoutMs:      2000,
		MushroomAnimationMs:    800,
		FocusWorkMinutes:       25,
		FocusShortBreakMinutes: 5,
		FocusLongBreakMinutes:  15,
		SchedulerBuffer:        64,
	}
}

// LoadRuntimeConfig layers defaults, the TOML file at path (when path is
// non-empty) and TASKQUEST_* environment overrides, in that order.
func LoadRuntimeConfig(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return RuntimeConfig{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	cfg = RuntimeConfigFromEnv(cfg)
	return cfg.normalized(), nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKQUEST_DB"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvString("TASKQUEST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TASKQUEST_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TASKQUEST_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnvInt("TASKQUEST_POINTS_PER_TASK"); ok && v > 0 {
		cfg.PointsPerTask = v
	}
	if v, ok := getEnvBool("TASKQUEST_FILTER_BY_WORLD"); ok {
		cfg.FilterByWorld = v
	}
	if v, ok := getEnvInt("TASKQUEST_STARTING_LIVES"); ok && v > 0 {
		cfg.StartingLives = v
	}
	if v, ok := getEnvString("TASKQUEST_SAGA"); ok {
		cfg.Saga = v
	}
	if v, ok := getEnvInt("TASKQUEST_FIGHT_DWELL_MS"); ok && v > 0 {
		cfg.FightDwellMs = v
	}
	if v, ok := getEnvInt("TASKQUEST_FOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.FocusWorkMinutes = v
	}
	if v, ok := getEnvInt("TASKQUEST_FOCUS_SHORT_BREAK_MINUTES"); ok && v > 0 {
		cfg.FocusShortBreakMinutes = v
	}
	if v, ok := getEnvInt("TASKQUEST_FOCUS_LONG_BREAK_MINUTES"); ok && v > 0 {
		cfg.FocusLongBreakMinutes = v
	}
	if v, ok := getEnvInt("TASKQUEST_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func (c RuntimeConfig) normalized() RuntimeConfig {
	def := DefaultRuntimeConfig()
	fix := func(v *int, d int) {
		if *v <= 0 {
			*v = d
		}
	}
	fix(&c.PointsPerTask, def.PointsPerTask)
	fix(&c.StartingLives, def.StartingLives)
	fix(&c.FightDwellMs, def.FightDwellMs)
	fix(&c.JumpMs, def.JumpMs)
	fix(&c.MushroomTimeoutMs, def.MushroomTimeoutMs)
	fix(&c.MushroomAnimationMs, def.MushroomAnimationMs)
	fix(&c.FocusWorkMinutes, def.FocusWorkMinutes)
	fix(&c.FocusShortBreakMinutes, def.FocusShortBreakMinutes)
	fix(&c.FocusLongBreakMinutes, def.FocusLongBreakMinutes)
	fix(&c.SchedulerBuffer, def.SchedulerBuffer)
	if !model.Saga(c.Saga).IsValid() {
		c.Saga = def.Saga
	}
	return c
}

func (c RuntimeConfig) Timings() game.Timings {
	return game.Timings{
		FightDwell: time.Duration(c.FightDwellMs) * time.Millisecond,
		Jump:       time.Duration(c.JumpMs) * time.Millisecond,
		Mushroom:   time.Duration(c.MushroomTimeoutMs) * time.Millisecond,
	}
}

func (c RuntimeConfig) FocusDurations() focus.Durations {
	return focus.Durations{
		Work:       time.Duration(c.FocusWorkMinutes) * time.Minute,
		ShortBreak: time.Duration(c.FocusShortBreakMinutes) * time.Minute,
		LongBreak:  time.Duration(c.FocusLongBreakMinutes) * time.Minute,
	}
}

func (c RuntimeConfig) MushroomAnimation() time.Duration {
	return time.Duration(c.MushroomAnimationMs) * time.Millisecond
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
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

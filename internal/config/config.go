package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasklog.db"
	DefaultLogName        = "tasklog.log"
	AppDirName            = "tasklog"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	New      string `toml:"new"`
	Palette  string `toml:"palette"`
	Search   string `toml:"search"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	MoveUp   string `toml:"move_up"`
	MoveDown string `toml:"move_down"`
	Finish   string `toml:"finish"`
	Giveup   string `toml:"giveup"`
	Archive  string `toml:"archive"`
	Delete   string `toml:"delete"`
	Detail   string `toml:"detail"`
	Tab      string `toml:"tab"`
	Help     string `toml:"help"`
	Cancel   string `toml:"cancel"`
}

type Planner struct {
	URL    string `toml:"url"`
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"`
}

type Config struct {
	DBPath               string  `toml:"db_path"`
	LogPath              string  `toml:"log_path"`
	Locale               string  `toml:"locale"`
	DesktopNotifications bool    `toml:"desktop_notifications"`
	ItemHeight           int     `toml:"item_height"`
	SchedulerBuffer      int     `toml:"scheduler_buffer"`
	Planner              Planner `toml:"planner"`
	Keys                 Keymap  `toml:"keys"`
}

// DefaultDir returns the per-user directory holding config, database and
// log files.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// LoadOrCreate reads the TOML file at path, writing the defaults first when
// it does not exist. Relative db and log paths resolve against the config
// file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.normalize().resolve(filepath.Dir(path)), nil
}

func Default() Config {
	return Config{
		DBPath:               DefaultDBName,
		LogPath:              DefaultLogName,
		Locale:               "en",
		DesktopNotifications: false,
		ItemHeight:           1,
		SchedulerBuffer:      64,
		Keys: Keymap{
			Quit:     "q",
			New:      "n",
			Palette:  "/",
			Search:   "f",
			Up:       "k",
			Down:     "j",
			MoveUp:   "K",
			MoveDown: "J",
			Finish:   "x",
			Giveup:   "g",
			Archive:  "a",
			Delete:   "d",
			Detail:   "enter",
			Tab:      "tab",
			Help:     "?",
			Cancel:   "esc",
		},
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// normalize refills fields a hand-edited file left empty.
func (c Config) normalize() Config {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.Locale == "" {
		c.Locale = def.Locale
	}
	if c.ItemHeight <= 0 {
		c.ItemHeight = def.ItemHeight
	}
	if c.SchedulerBuffer <= 0 {
		c.SchedulerBuffer = def.SchedulerBuffer
	}
	c.Keys = c.Keys.withDefaults(def.Keys)
	return c
}

func (c Config) resolve(dir string) Config {
	if c.DBPath != ":memory:" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	return c
}

func (k Keymap) withDefaults(def Keymap) Keymap {
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&k.Quit, def.Quit)
	fill(&k.New, def.New)
	fill(&k.Palette, def.Palette)
	fill(&k.Search, def.Search)
	fill(&k.Up, def.Up)
	fill(&k.Down, def.Down)
	fill(&k.MoveUp, def.MoveUp)
	fill(&k.MoveDown, def.MoveDown)
	fill(&k.Finish, def.Finish)
	fill(&k.Giveup, def.Giveup)
	fill(&k.Archive, def.Archive)
	fill(&k.Delete, def.Delete)
	fill(&k.Detail, def.Detail)
	fill(&k.Tab, def.Tab)
	fill(&k.Help, def.Help)
	fill(&k.Cancel, def.Cancel)
	return k
}

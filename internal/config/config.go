package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tgienger/tasktree/internal/models"
	"gopkg.in/yaml.v3"
)

// View names accepted by the view setting
const (
	ViewCards = "cards"
	ViewTree  = "tree"
)

// Config is the on-disk configuration
type Config struct {
	// Tags is the fixed tag catalog offered by the UI
	Tags []models.Tag `yaml:"tags"`
	// Tasks seeds the in-memory collection at startup
	Tasks []models.Task `yaml:"tasks"`
	// View is the initial view, cards or tree
	View    string `yaml:"view"`
	DataDir string `yaml:"data_dir"`
	Log     struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// DefaultTags is the catalog used when the config does not list any
var DefaultTags = []models.Tag{
	{ID: "1", Name: "design", Color: "#bb9af7"},
	{ID: "2", Name: "development", Color: "#7aa2f7"},
	{ID: "3", Name: "urgent", Color: "#f7768e"},
}

// Default returns the configuration used when no file exists
func Default() Config {
	cfg := Config{
		Tags:    append([]models.Tag(nil), DefaultTags...),
		View:    ViewCards,
		DataDir: defaultDataDir(),
	}
	cfg.Log.Level = "info"
	return cfg
}

// LogFile returns the configured log file, defaulting to tasktree.log in
// the data directory
func (c Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "tasktree.log")
}

// Path returns the config file location: TASKTREE_CONFIG if set, otherwise
// tasktree/config.yaml under the user config directory
func Path() (string, error) {
	if custom := os.Getenv("TASKTREE_CONFIG"); custom != "" {
		return custom, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine config directory: %w", err)
		}
	}
	return filepath.Join(dir, "tasktree", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file (%s): %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML (%s): %w", path, err)
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = append([]models.Tag(nil), DefaultTags...)
	}
	cfg.DataDir = expandHomeDir(cfg.DataDir)
	cfg.Log.File = expandHomeDir(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate checks the catalog and seed tasks, filling in blank statuses
// and missing ids
func (c *Config) Validate() error {
	switch c.View {
	case "":
		c.View = ViewCards
	case ViewCards, ViewTree:
	default:
		return fmt.Errorf("unknown view %q", c.View)
	}

	names := make(map[string]bool, len(c.Tags))
	for i, tag := range c.Tags {
		name := strings.TrimSpace(tag.Name)
		if name == "" {
			return fmt.Errorf("tag %d has no name", i+1)
		}
		if names[name] {
			return fmt.Errorf("duplicate tag %q", name)
		}
		names[name] = true
		if tag.ID == "" {
			c.Tags[i].ID = fmt.Sprintf("%d", i+1)
		}
	}

	ids := make(map[string]bool, len(c.Tasks))
	for i := range c.Tasks {
		t := &c.Tasks[i]
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("task %d has no title", i+1)
		}
		if t.ID == "" {
			t.ID = fmt.Sprintf("%d", i+1)
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate task id %q", t.ID)
		}
		ids[t.ID] = true

		status, err := normalizeStatus(t.Status)
		if err != nil {
			return fmt.Errorf("task %q: %w", t.ID, err)
		}
		t.Status = status
		if err := normalizeSubtasks(t.ID, t.Subtasks); err != nil {
			return fmt.Errorf("task %q: %w", t.ID, err)
		}
	}
	return nil
}

// normalizeSubtasks assigns missing ids as <parent>-<n> and checks sibling
// ids are unique
func normalizeSubtasks(parentID string, items []models.Subtask) error {
	seen := make(map[string]bool, len(items))
	for i := range items {
		s := &items[i]
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("subtask %d of %q has no title", i+1, parentID)
		}
		if s.ID == "" {
			s.ID = fmt.Sprintf("%s-%d", parentID, i+1)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate subtask id %q", s.ID)
		}
		seen[s.ID] = true

		status, err := normalizeStatus(s.Status)
		if err != nil {
			return fmt.Errorf("subtask %q: %w", s.ID, err)
		}
		s.Status = status
		if err := normalizeSubtasks(s.ID, s.Subtasks); err != nil {
			return err
		}
	}
	return nil
}

func normalizeStatus(s models.Status) (models.Status, error) {
	if s == "" {
		return models.StatusPending, nil
	}
	st, ok := models.ParseStatus(string(s))
	if !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

func defaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "tasktree")
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "tasktree")
}

func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/signup"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
)

// Record store backends
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

const (
	defaultActivitiesTab = "Atividades"
	defaultVolunteersTab = "Voluntarios"
	timeLayout           = "15:04"
)

// VisibilityConfig selects how activities are filtered for a volunteer
type VisibilityConfig struct {
	Mode              string `yaml:"mode,omitempty" validate:"omitempty,oneof=rules ceiling"`
	RequireDepartment bool   `yaml:"requireDepartment,omitempty"`
}

// SignupConfig toggles the optional sign-up checks. Unset fields default to true.
type SignupConfig struct {
	PreventDuplicates *bool `yaml:"preventDuplicates,omitempty"`
	CheckConflicts    *bool `yaml:"checkConflicts,omitempty"`
	OptimisticGuard   *bool `yaml:"optimisticGuard,omitempty"`
}

// NotificationsConfig controls sign-up confirmation e-mails
type NotificationsConfig struct {
	Enabled       bool   `yaml:"enabled,omitempty"`
	GmailSender   string `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	SubjectPrefix string `yaml:"subjectPrefix,omitempty"`
}

// RecurringActivity is a template expanded into dated activities by scheduleActivities
type RecurringActivity struct {
	Name       string `yaml:"name" validate:"required"`
	Department string `yaml:"department,omitempty"`
	RRule      string `yaml:"rrule" validate:"required"`
	Time       string `yaml:"time,omitempty"`
	Level      string `yaml:"level,omitempty"`
	Rule       string `yaml:"rule,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Backend             string              `yaml:"backend,omitempty" validate:"oneof=sheets postgres sqlite"`
	ActivitySheetID     string              `yaml:"activitySheetID,omitempty" validate:"required_if=Backend sheets"`
	ActivitiesTab       string              `yaml:"activitiesTab,omitempty"`
	VolunteersTab       string              `yaml:"volunteersTab,omitempty"`
	DatabaseSheetID     string              `yaml:"databaseSheetID,omitempty"`
	PostgresURL         string              `yaml:"postgresURL,omitempty" validate:"required_if=Backend postgres"`
	SQLitePath          string              `yaml:"sqlitePath,omitempty" validate:"required_if=Backend sqlite"`
	Levels              [][]string          `yaml:"levels,omitempty" validate:"dive,min=1,dive,required"`
	Visibility          VisibilityConfig    `yaml:"visibility,omitempty"`
	Signup              SignupConfig        `yaml:"signup,omitempty"`
	Notifications       NotificationsConfig `yaml:"notifications,omitempty"`
	RecurringActivities []RecurringActivity `yaml:"recurringActivities,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load finds, loads and validates the configuration for env
func Load(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendSheets
	}
	if c.ActivitiesTab == "" {
		c.ActivitiesTab = defaultActivitiesTab
	}
	if c.VolunteersTab == "" {
		c.VolunteersTab = defaultVolunteersTab
	}
}

// Validate checks struct tags, the level table, the visibility mode and every recurring activity
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.Ordering(); err != nil {
		return fmt.Errorf("invalid levels: %w", err)
	}

	for i, activity := range cfg.RecurringActivities {
		if _, err := rrule.StrToRRule(activity.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurringActivities[%d]: %w", i, err)
		}
		if activity.Time != "" {
			if _, err := time.Parse(timeLayout, activity.Time); err != nil {
				return fmt.Errorf("invalid time in recurringActivities[%d]: expected HH:MM, got %q", i, activity.Time)
			}
		}
	}

	return nil
}

// Ordering returns the configured level table, or the default table when none is configured
func (c *Config) Ordering() (*levels.Ordering, error) {
	if len(c.Levels) == 0 {
		return levels.Default(), nil
	}
	return levels.New(c.Levels)
}

// Policy returns the visibility policy
func (c *Config) Policy() (visibility.Policy, error) {
	mode, err := visibility.ParseMode(c.Visibility.Mode)
	if err != nil {
		return visibility.Policy{}, err
	}
	return visibility.Policy{
		Mode:              mode,
		RequireDepartment: c.Visibility.RequireDepartment,
	}, nil
}

// SignupOptions returns the sign-up options, every unset toggle enabled
func (c *Config) SignupOptions() signup.Options {
	return signup.Options{
		PreventDuplicates: boolOr(c.Signup.PreventDuplicates, true),
		CheckConflicts:    boolOr(c.Signup.CheckConflicts, true),
		OptimisticGuard:   boolOr(c.Signup.OptimisticGuard, true),
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// findConfigFile searches for portal_config.<env>.yaml, then portal_config.yaml
func findConfigFile(env string) (string, error) {
	names := []string{"portal_config.yaml"}
	if env != "" {
		names = append([]string{"portal_config." + env + ".yaml"}, names...)
	}
	return findInSearchPath(names...)
}

// findInSearchPath returns the first of names present in the current directory or,
// failing that, the home directory
func findInSearchPath(names ...string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range names {
		for _, candidate := range []string{name, filepath.Join(homeDir, name)} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", names[0])
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
)

func validConfig() *Config {
	return &Config{
		Backend:         BackendSheets,
		ActivitySheetID: "sheet123",
		ActivitiesTab:   "Atividades",
		VolunteersTab:   "Voluntarios",
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portal_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate_MinimalConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_FullConfig(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseSheetID = "db789"
	cfg.Levels = [][]string{{"BAS", "Básico"}, {"AV1"}, {"AV2"}}
	cfg.Visibility = VisibilityConfig{Mode: "ceiling", RequireDepartment: true}
	cfg.Notifications = NotificationsConfig{Enabled: true, GmailSender: "portal@example.com"}
	cfg.RecurringActivities = []RecurringActivity{
		{Name: "Portaria", RRule: "FREQ=WEEKLY;BYDAY=SA", Time: "09:00", Level: "BAS"},
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_MissingSheetIDForSheetsBackend(t *testing.T) {
	cfg := validConfig()
	cfg.ActivitySheetID = ""

	err := Validate(cfg)
	assert.ErrorContains(t, err, "validation failed")
}

func TestValidate_BackendRequirements(t *testing.T) {
	cfg := &Config{Backend: BackendPostgres}
	assert.ErrorContains(t, Validate(cfg), "PostgresURL")

	cfg.PostgresURL = "postgres://localhost/portal"
	assert.NoError(t, Validate(cfg))

	cfg = &Config{Backend: BackendSQLite}
	assert.ErrorContains(t, Validate(cfg), "SQLitePath")

	cfg.SQLitePath = "portal.db"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Backend = "excel"
	assert.ErrorContains(t, Validate(cfg), "validation failed")
}

func TestValidate_InvalidVisibilityMode(t *testing.T) {
	cfg := validConfig()
	cfg.Visibility.Mode = "strict"
	assert.ErrorContains(t, Validate(cfg), "validation failed")
}

func TestValidate_InvalidLevels(t *testing.T) {
	cfg := validConfig()
	cfg.Levels = [][]string{{"BAS"}, {"AV1", "BAS"}}
	assert.ErrorContains(t, Validate(cfg), "invalid levels")

	cfg.Levels = [][]string{{"BAS"}, {}}
	assert.ErrorContains(t, Validate(cfg), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := validConfig()
	cfg.RecurringActivities = []RecurringActivity{
		{Name: "Portaria", RRule: "FREQ=WEEKLY;BYDAY=SA"},
		{Name: "Cozinha", RRule: "INVALID_RRULE"},
	}

	err := Validate(cfg)
	assert.ErrorContains(t, err, "invalid rrule in recurringActivities[1]")
}

func TestValidate_RecurringActivityWithoutRRule(t *testing.T) {
	cfg := validConfig()
	cfg.RecurringActivities = []RecurringActivity{{Name: "Portaria"}}

	assert.ErrorContains(t, Validate(cfg), "validation failed")
}

func TestValidate_InvalidTime(t *testing.T) {
	cfg := validConfig()
	cfg.RecurringActivities = []RecurringActivity{
		{Name: "Portaria", RRule: "FREQ=DAILY", Time: "9h"},
	}

	assert.ErrorContains(t, Validate(cfg), "expected HH:MM")
}

func TestValidate_InvalidSender(t *testing.T) {
	cfg := validConfig()
	cfg.Notifications.GmailSender = "not an email"
	assert.ErrorContains(t, Validate(cfg), "validation failed")
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
activitySheetID: "sheet123"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSheets, cfg.Backend)
	assert.Equal(t, "Atividades", cfg.ActivitiesTab)
	assert.Equal(t, "Voluntarios", cfg.VolunteersTab)

	opts := cfg.SignupOptions()
	assert.True(t, opts.PreventDuplicates)
	assert.True(t, opts.CheckConflicts)
	assert.True(t, opts.OptimisticGuard)

	ordering, err := cfg.Ordering()
	require.NoError(t, err)
	assert.Equal(t, levels.Default().Tags(), ordering.Tags())

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, visibility.ModeRules, policy.Mode)
}

func TestLoadFromPath_FullConfig(t *testing.T) {
	path := writeConfig(t, `
backend: sqlite
sqlitePath: "portal.db"
levels:
  - ["BAS", "Básico"]
  - ["AV1"]
visibility:
  mode: ceiling
  requireDepartment: true
signup:
  checkConflicts: false
  optimisticGuard: false
notifications:
  enabled: true
  subjectPrefix: "[ProVida]"
recurringActivities:
  - name: "Portaria"
    department: "Acolhimento"
    rrule: "FREQ=WEEKLY;BYDAY=SA"
    time: "09:00"
    level: "BAS"
    rule: "Aberto a todos os níveis"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "portal.db", cfg.SQLitePath)

	ordering, err := cfg.Ordering()
	require.NoError(t, err)
	assert.Equal(t, 0, ordering.Rank("Básico"))
	assert.Equal(t, 1, ordering.Rank("AV1"))

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, visibility.ModeCeiling, policy.Mode)
	assert.True(t, policy.RequireDepartment)

	opts := cfg.SignupOptions()
	assert.True(t, opts.PreventDuplicates)
	assert.False(t, opts.CheckConflicts)
	assert.False(t, opts.OptimisticGuard)

	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, "[ProVida]", cfg.Notifications.SubjectPrefix)

	require.Len(t, cfg.RecurringActivities, 1)
	assert.Equal(t, "Acolhimento", cfg.RecurringActivities[0].Department)
	assert.Equal(t, "Aberto a todos os níveis", cfg.RecurringActivities[0].Rule)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	path := writeConfig(t, `
activitySheetID: "sheet123"
recurringActivities:
  - name: "Portaria"
    rrule: "NOT_AN_RRULE"
`)

	_, err := LoadFromPath(path)
	assert.ErrorContains(t, err, "invalid rrule")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "activitySheetID: [unclosed")

	_, err := LoadFromPath(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_PrefersEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, os.WriteFile("portal_config.yaml", []byte("activitySheetID: base\n"), 0644))
	require.NoError(t, os.WriteFile("portal_config.test.yaml", []byte("activitySheetID: test\n"), 0644))

	cfg, err := Load("test")
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.ActivitySheetID)

	cfg, err = Load("prod")
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.ActivitySheetID)
}

func TestLoad_NotFound(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := Load("test")
	assert.ErrorContains(t, err, "not found")
}

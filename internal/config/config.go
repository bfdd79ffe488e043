package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yigit/rostersql/internal/app/models"
	"github.com/yigit/rostersql/internal/pkg/apperrors"
	"github.com/yigit/rostersql/internal/pkg/helpers"
	"github.com/yigit/rostersql/internal/pkg/validation"
)

// Default file locations
const (
	DefaultConfigPath = "rostersql.yaml"
	DefaultEnvPath    = ".env"
)

// Calendar years accepted for a class
const (
	minCalendarYear = 1900
	maxCalendarYear = 2200
)

// Config structure represents the application configuration
type Config struct {
	Roster struct {
		Input             string `yaml:"input" env:"ROSTER_INPUT"`
		Output            string `yaml:"output" env:"ROSTER_OUTPUT"`
		OwnerID           string `yaml:"owner_id" env:"ROSTER_OWNER_ID"`
		ClassID           string `yaml:"class_id" env:"ROSTER_CLASS_ID"`
		LiteralTimestamps bool   `yaml:"literal_timestamps" env:"ROSTER_LITERAL_TIMESTAMPS"`
	} `yaml:"roster"`

	Class struct {
		Name              string `yaml:"name" env:"CLASS_NAME"`
		Series            string `yaml:"series" env:"CLASS_SERIES"`
		Letter            string `yaml:"letter" env:"CLASS_LETTER"`
		Course            string `yaml:"course" env:"CLASS_COURSE"`
		DirectorEmail     string `yaml:"director_email" env:"CLASS_DIRECTOR_EMAIL"`
		Active            bool   `yaml:"active" env:"CLASS_ACTIVE"`
		StartYear         int    `yaml:"start_year" env:"CLASS_START_YEAR"`
		CurrentYear       int    `yaml:"current_year" env:"CLASS_CURRENT_YEAR"`
		StartYearDate     string `yaml:"start_year_date" env:"CLASS_START_YEAR_DATE"`
		StartCalendarYear int    `yaml:"start_calendar_year" env:"CLASS_START_CALENDAR_YEAR"`
		EndCalendarYear   int    `yaml:"end_calendar_year" env:"CLASS_END_CALENDAR_YEAR"`
		Archived          bool   `yaml:"archived" env:"CLASS_ARCHIVED"`
		TemplateID        string `yaml:"template_id" env:"CLASS_TEMPLATE_ID"`
	} `yaml:"class"`

	SQL struct {
		Schema        string `yaml:"schema" env:"SQL_SCHEMA"`
		ClassesTable  string `yaml:"classes_table" env:"SQL_CLASSES_TABLE"`
		StudentsTable string `yaml:"students_table" env:"SQL_STUDENTS_TABLE"`
		Header        string `yaml:"header" env:"SQL_HEADER"`
	} `yaml:"sql"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a YAML file, an optional .env file and
// environment variables, in increasing order of precedence. Missing files are
// not an error.
func LoadConfig(configPath, envPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidConfig, fmt.Sprintf("failed to parse config %s: %v", configPath, err))
		}
	}

	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			// godotenv never overrides variables already set in the process
			if err := godotenv.Load(envPath); err != nil {
				return nil, apperrors.NewCustomError(apperrors.ErrInvalidConfig, fmt.Sprintf("failed to load %s: %v", envPath, err))
			}
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidConfig, fmt.Sprintf("failed to load from environment: %v", err))
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Roster.Input = "students_raw.txt"
	config.Roster.Output = "insert_students.sql"
	config.Roster.OwnerID = "211dfeb8-7476-4361-92b3-e9e7aa0a7808"
	config.Roster.ClassID = "f17d4ae4-8861-42c8-8380-76533dae9c32"

	config.Class.Name = "2026-2028 Técnico em Comércio C"
	config.Class.Series = "1º ano"
	config.Class.Letter = "C"
	config.Class.Course = "Técnico em Comércio"
	config.Class.Active = true
	config.Class.StartYear = 1
	config.Class.CurrentYear = 1
	config.Class.StartYearDate = "2026-02-01"
	config.Class.StartCalendarYear = 2026
	config.Class.EndCalendarYear = 2028
	config.Class.TemplateID = "36d29be5-5a6b-447b-8076-8f0c54c9c1ab"

	config.SQL.Schema = "public"
	config.SQL.ClassesTable = "classes"
	config.SQL.StudentsTable = "students"
	config.SQL.Header = "SQL generated automatically"

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Roster.Input) == "" {
		errs = append(errs, errors.New("roster input path is required"))
	}
	if strings.TrimSpace(c.Roster.Output) == "" {
		errs = append(errs, errors.New("roster output path is required"))
	}
	if _, err := uuid.Parse(c.Roster.OwnerID); err != nil {
		errs = append(errs, fmt.Errorf("owner id %q: %w", c.Roster.OwnerID, err))
	}
	if _, err := uuid.Parse(c.Roster.ClassID); err != nil {
		errs = append(errs, fmt.Errorf("class id %q: %w", c.Roster.ClassID, err))
	}
	if c.Class.TemplateID != "" {
		if _, err := uuid.Parse(c.Class.TemplateID); err != nil {
			errs = append(errs, fmt.Errorf("class template id %q: %w", c.Class.TemplateID, err))
		}
	}
	if !validation.NewStringValidation(strings.TrimSpace(c.Class.Name)).WithMaxLength(validation.NameMaxLength).Validate() {
		errs = append(errs, fmt.Errorf("class name is required and at most %d characters", validation.NameMaxLength))
	}
	if !validation.NewStringValidation(c.Class.DirectorEmail).WithRequired(false).WithPattern(validation.CompiledPatterns.Email).Validate() {
		errs = append(errs, fmt.Errorf("class director email %q is not a valid address", c.Class.DirectorEmail))
	}
	if c.Class.StartYearDate != "" {
		if _, err := helpers.ParseSQLDate(c.Class.StartYearDate); err != nil {
			errs = append(errs, fmt.Errorf("class start year date %q: %w", c.Class.StartYearDate, err))
		}
	}
	for _, y := range []struct {
		name string
		year int
	}{
		{"class start calendar year", c.Class.StartCalendarYear},
		{"class end calendar year", c.Class.EndCalendarYear},
	} {
		if !validation.NewNumericValidation(y.year).WithMin(minCalendarYear).WithMax(maxCalendarYear).Validate() {
			errs = append(errs, fmt.Errorf("%s %d is out of range", y.name, y.year))
		}
	}
	if c.Class.EndCalendarYear < c.Class.StartCalendarYear {
		errs = append(errs, fmt.Errorf("class end calendar year %d is before start %d", c.Class.EndCalendarYear, c.Class.StartCalendarYear))
	}
	for _, id := range []struct {
		name  string
		value string
	}{
		{"sql schema", c.SQL.Schema},
		{"sql classes table", c.SQL.ClassesTable},
		{"sql students table", c.SQL.StudentsTable},
	} {
		v := validation.NewStringValidation(id.value).
			WithMaxLength(validation.SQLIdentifierMaxLength).
			WithPattern(validation.CompiledPatterns.SQLIdentifier)
		if !v.Validate() {
			errs = append(errs, fmt.Errorf("%s %q is not a plain identifier", id.name, id.value))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// OwnerUUID returns the parsed owner id. Call Validate first.
func (c *Config) OwnerUUID() uuid.UUID {
	return uuid.MustParse(c.Roster.OwnerID)
}

// ClassUUID returns the parsed class id. Call Validate first.
func (c *Config) ClassUUID() uuid.UUID {
	return uuid.MustParse(c.Roster.ClassID)
}

// ClassRecord builds the class payload upserted by every run. Call Validate first.
func (c *Config) ClassRecord() models.ClassRecord {
	var template uuid.NullUUID
	if c.Class.TemplateID != "" {
		template = uuid.NullUUID{UUID: uuid.MustParse(c.Class.TemplateID), Valid: true}
	}
	return models.ClassRecord{
		ID:                c.ClassUUID(),
		OwnerID:           c.OwnerUUID(),
		Name:              c.Class.Name,
		Series:            c.Class.Series,
		Letter:            c.Class.Letter,
		Course:            c.Class.Course,
		DirectorEmail:     c.Class.DirectorEmail,
		Active:            c.Class.Active,
		StartYear:         c.Class.StartYear,
		CurrentYear:       c.Class.CurrentYear,
		StartYearDate:     c.Class.StartYearDate,
		StartCalendarYear: c.Class.StartCalendarYear,
		EndCalendarYear:   c.Class.EndCalendarYear,
		Archived:          c.Class.Archived,
		TemplateID:        template,
	}
}

package bootstrap

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yigit/rostersql/internal/app/parser"
	appServices "github.com/yigit/rostersql/internal/app/services"
	"github.com/yigit/rostersql/internal/app/sqlgen"
	"github.com/yigit/rostersql/internal/config"
	"github.com/yigit/rostersql/internal/pkg/filestorage"
	"github.com/yigit/rostersql/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	RosterService appServices.RosterService
}

// Overrides carries command-line values that take precedence over the config
// file and environment. Empty fields are ignored.
type Overrides struct {
	InputPath  string
	OutputPath string
	ClassID    string
	OwnerID    string
	LogLevel   string
	LogPretty  *bool
}

// LoadConfigAndSetupLogger loads configuration, applies overrides, validates
// the result and initializes the logger.
func LoadConfigAndSetupLogger(configPath, envPath string, o Overrides) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath, envPath)
	if err != nil {
		logger.Error().Err(err).Str("config", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	applyOverrides(cfg, o)

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"
	if o.LogPretty != nil {
		prettyLog = *o.LogPretty
	}

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Debug().Str("logLevel", string(logLevel)).Bool("pretty", prettyLog).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies wires the extractor, emitter and storage into a roster service
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) *Dependencies {
	storage := filestorage.NewLocalStorage()

	extractor := parser.NewExtractor(parser.Options{
		OwnerID: cfg.OwnerUUID(),
		ClassID: cfg.ClassUUID(),
	}, lgr.With().Str("component", "extractor").Logger())

	emitter := sqlgen.NewEmitter(sqlgen.Options{
		Schema:            cfg.SQL.Schema,
		ClassesTable:      cfg.SQL.ClassesTable,
		StudentsTable:     cfg.SQL.StudentsTable,
		Header:            cfg.SQL.Header,
		Class:             cfg.ClassRecord(),
		LiteralTimestamps: cfg.Roster.LiteralTimestamps,
	})

	return &Dependencies{
		RosterService: appServices.NewRosterService(storage, extractor, emitter, lgr),
	}
}

func applyOverrides(cfg *config.Config, o Overrides) {
	if o.InputPath != "" {
		cfg.Roster.Input = o.InputPath
	}
	if o.OutputPath != "" {
		cfg.Roster.Output = o.OutputPath
	}
	if o.ClassID != "" {
		cfg.Roster.ClassID = o.ClassID
	}
	if o.OwnerID != "" {
		cfg.Roster.OwnerID = o.OwnerID
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
}

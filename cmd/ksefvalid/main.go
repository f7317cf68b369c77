// Command ksefvalid validates invoice XML files against the bundled FA
// schemas and prints every finding. Exit status is 1 when any file has
// validation errors, 2 on usage or setup problems.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrymomot/ksefkit/pkg/config"
	"github.com/dmitrymomot/ksefkit/pkg/logger"
	"github.com/dmitrymomot/ksefkit/pkg/schema"
	"github.com/dmitrymomot/ksefkit/pkg/validation"
)

type appConfig struct {
	LogLevel      slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     logger.Format `env:"LOG_FORMAT" envDefault:"text"`
	SchemaVersion string        `env:"SCHEMA_VERSION"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(files []string) int {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	switch cfg.LogFormat {
	case logger.FormatJSON, logger.FormatText:
	default:
		fmt.Fprintf(os.Stderr, "unknown LOG_FORMAT %q: must be %q or %q\n",
			cfg.LogFormat, logger.FormatJSON, logger.FormatText)
		return 2
	}

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithAttr(slog.String("run_id", uuid.NewString())),
	)

	if len(files) == 0 {
		log.Error("no input files; usage: ksefvalid <invoice.xml> [...]")
		return 2
	}

	var opts []schema.Option
	switch cfg.SchemaVersion {
	case "":
		// auto-detect from the root namespace
	case string(schema.FA2), string(schema.FA3):
		opts = append(opts, schema.WithVersion(schema.Version(cfg.SchemaVersion)))
	default:
		log.Error("unknown SCHEMA_VERSION", slog.String("value", cfg.SchemaVersion))
		return 2
	}

	validator := schema.New()
	failed := false
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			log.Error("cannot open file", logger.File(path), logger.Error(err))
			failed = true
			continue
		}

		res, err := validator.ValidateReader(f, opts...)
		_ = f.Close()
		if err != nil {
			log.Error("validator setup failed", logger.File(path), logger.Error(err))
			return 2
		}

		printIssues(log, path, res)
		if !res.IsValid() {
			failed = true
		}
	}

	if failed {
		return 1
	}
	return 0
}

func printIssues(log *slog.Logger, path string, res *validation.Result) {
	for _, issue := range res.Errors {
		log.Error(issue.Message, logger.File(path),
			slog.String("code", issue.Code), slog.String("field", issue.Field))
	}
	for _, issue := range res.Warnings {
		log.Warn(issue.Message, logger.File(path),
			slog.String("code", issue.Code), slog.String("field", issue.Field))
	}
	if res.IsValid() {
		log.Info("document is schema-valid", logger.File(path), logger.Issues(res))
	}
}

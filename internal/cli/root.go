// Package cli implements the ats command line tool.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/scoring"
	"alfredoptarigan/ats-analyzer/internal/services"
)

const (
	app       = "ats"
	envPrefix = "ATS"
)

// Config is the file/env/flag configuration shared by all commands.
type Config struct {
	Threshold int          `mapstructure:"threshold"`
	Lexicon   string       `mapstructure:"lexicon"`
	JSON      bool         `mapstructure:"json"`
	Debug     bool         `mapstructure:"debug"`
	Gemini    GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

// runtime is built once per invocation in PersistentPreRunE.
type runtime struct {
	v         *viper.Viper
	cfg       *Config
	log       *zap.Logger
	analyzer  *scoring.Analyzer
	extractor services.ExtractorService
}

// NewRootCommand builds the command tree. Each call gets its own viper
// instance so commands can be run repeatedly in one process.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	rt := &runtime{v: v, extractor: services.NewExtractorService()}
	var cfgFile string

	root := &cobra.Command{
		Use:           app,
		Short:         "ats scores a resume against a job description the way an applicant tracking system would",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cfgFile)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "a YAML config file")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().Bool("json", false, "print results as JSON")
	root.PersistentFlags().Int("threshold", scoring.DefaultThreshold, "fuzzy match threshold (0-100)")
	root.PersistentFlags().String("lexicon", "", "lexicon YAML overriding the built-in word lists")

	for _, name := range []string{"debug", "json", "threshold", "lexicon"} {
		_ = v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}

	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.max-retries", 3)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about
	_ = v.BindEnv("gemini.api-key")

	root.AddCommand(
		newAnalyzeCommand(rt),
		newKeywordsCommand(rt),
		newReportCommand(rt),
	)

	return root
}

// Execute runs the ats command line tool.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (rt *runtime) init(cfgFile string) error {
	if cfgFile != "" {
		rt.v.SetConfigFile(cfgFile)
		if err := rt.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := rt.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	rt.cfg = &cfg

	// results own stdout; the logger only speaks with --debug
	rt.log = zap.NewNop()
	if cfg.Debug {
		log, err := logger.New(cfg.JSON, true)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		rt.log = log
	}

	lex := scoring.DefaultLexicon()
	if cfg.Lexicon != "" {
		var err error
		if lex, err = scoring.LoadLexicon(cfg.Lexicon); err != nil {
			return err
		}
	}
	rt.analyzer = scoring.NewAnalyzer(lex)

	rt.log.Debug("configuration loaded",
		zap.Int("threshold", cfg.Threshold),
		zap.String("lexicon_version", lex.Version),
		zap.Bool("ai", cfg.Gemini.APIKey != ""),
	)
	return nil
}

// readDocument returns the text of a PDF or DOCX file, or the raw contents of
// any other file.
func (rt *runtime) readDocument(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path is required")
	}
	if _, ok := services.DocumentKindFromFilename(path); ok {
		return rt.extractor.ExtractFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

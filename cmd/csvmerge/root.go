package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shapestone/csvmerge/internal/dialect"
	"github.com/shapestone/csvmerge/pkg/merge"
)

const envPrefix = "CSVMERGE"

// auto is the value of --delimiter and --header that asks for sniffing.
const auto = "auto"

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "csvmerge [flags] <left-file> <right-file> [<output-file>]",
		Short: "Merge two sorted delimited files on a key field",
		Long: `csvmerge joins lines of two files sorted by the same key field.
Lines with equal keys are written as one line; a line without a counterpart
is written with empty columns for the other file, unless --drop-empty is set.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(2, 3)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigFile(v); err != nil {
				return err
			}
			return runMerge(v, args, stdin, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := cmd.Flags()
	flags.StringP("delimiter", "d", ",", `field delimiter: one character, "tab", or "auto" to detect it from the left file`)
	flags.BoolP("no-quotes", "q", false, "split on every delimiter, ignoring quotes and backslashes")
	flags.BoolP("time", "t", false, "compare keys as clock durations (HH:MM:SS.fff) instead of integers")
	flags.BoolP("drop-empty", "e", false, "discard lines that have no counterpart")
	flags.StringP("header", "H", "0", `number of header lines copied from the left file, or "auto"`)
	flags.IntP("key", "k", 1, "1-based index of the key field")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("config", "", "config file (YAML, JSON or TOML) with flag defaults")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	return cmd
}

// loadConfigFile reads --config, if set. Flags and environment take precedence.
func loadConfigFile(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return usagef("read config %s: %w", path, err)
	}
	return nil
}

// settings are the parsed command line values before dialect sniffing.
type settings struct {
	left, right, output string

	autoDelimiter bool
	autoHeader    bool
	cfg           merge.Config
}

func parseSettings(v *viper.Viper, args []string) (settings, error) {
	s := settings{left: args[0], right: args[1], cfg: merge.DefaultConfig()}
	if len(args) == 3 {
		s.output = args[2]
	}
	if s.left == "-" && s.right == "-" {
		return s, usagef("only one input may be read from stdin")
	}

	delim, err := parseDelimiter(v.GetString("delimiter"))
	if err != nil {
		return s, err
	}
	s.autoDelimiter = delim == 0
	s.cfg.Delimiter = delim

	headerFlag := strings.TrimSpace(v.GetString("header"))
	if strings.EqualFold(headerFlag, auto) {
		s.autoHeader = true
	} else {
		n, err := strconv.Atoi(headerFlag)
		if err != nil || n < 0 {
			return s, usagef("invalid --header %q: want a non-negative count or %q", headerFlag, auto)
		}
		s.cfg.Header = n
	}

	key := v.GetInt("key")
	if key < 1 {
		return s, usagef("invalid --key %d: field indexes start at 1", key)
	}
	s.cfg.Key = key - 1

	s.cfg.Quoting = !v.GetBool("no-quotes")
	s.cfg.DropEmpty = v.GetBool("drop-empty")
	if v.GetBool("time") {
		s.cfg.Compare = merge.CompareDuration
	}
	return s, nil
}

// parseDelimiter returns the delimiter rune, or 0 for "auto".
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case auto:
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, usagef("invalid --delimiter %q: want a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func runMerge(v *viper.Viper, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	logger, err := newLogger(stderr, v.GetString("log-level"))
	if err != nil {
		return err
	}

	s, err := parseSettings(v, args)
	if err != nil {
		return err
	}

	in, err := openInputs(s.left, s.right, stdin)
	if err != nil {
		logger.Error("open inputs", "stage", "error", "code", classify(err), "err", err)
		return err
	}
	defer in.Close()

	if s.autoDelimiter || s.autoHeader {
		sample, err := in.sample()
		if err != nil {
			logger.Error("sniff left input", "stage", "error", "code", classify(err), "err", err)
			return err
		}
		sniffer := dialect.NewSniffer(sample)
		if s.autoDelimiter {
			s.cfg.Delimiter = sniffer.DetectDelimiter()
		}
		if s.autoHeader && sniffer.HasHeader() {
			s.cfg.Header = 1
		}
		logger.Debug("sniffed dialect",
			"delimiter", string(s.cfg.Delimiter), "header", s.cfg.Header)
	}

	m, err := merge.New(s.cfg)
	if err != nil {
		return &usageError{err: err}
	}

	out, err := openOutput(s.output, stdout)
	if err != nil {
		logger.Error("open output", "stage", "error", "code", classify(err), "err", err)
		return err
	}

	logger.Info("merge",
		"stage", "start",
		"left", s.left,
		"right", s.right,
		"output", outputName(s.output),
		"delimiter", string(s.cfg.Delimiter),
		"quoting", s.cfg.Quoting,
		"compare", s.cfg.Compare.String(),
		"drop_empty", s.cfg.DropEmpty,
		"header", s.cfg.Header,
		"key", s.cfg.Key+1,
	)

	start := time.Now()
	stats, err := m.MergeReaders(in.left, in.right, out)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	attrs := []any{
		"dur_ms", time.Since(start).Milliseconds(),
		"written", stats.Written(),
		"joined", stats.Joined,
		"left_only", stats.LeftOnly,
		"right_only", stats.RightOnly,
		"dropped", stats.Dropped,
	}
	if err != nil {
		logger.Error("merge", append([]any{"stage", "error", "code", classify(err), "err", err}, attrs...)...)
		return err
	}
	logger.Info("merge", append([]any{"stage", "finish"}, attrs...)...)
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

// logLevels maps --log-level values.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Command leo queries an online dictionary service for a term and prints
// the translation tables of the result page, paired with German.
//
//	leo [-D|--with-defs] [-E|--with-examples] [-P|--with-phrases]
//	    [-v|--verbose]... [-l|--language LANG] QUERYSTRING
//
// Nouns, verbs and adjectives/adverbs are always printed, examples and
// phrases on request. Results go to stdout, log messages to stderr.
// Host, protocol and timeout can be overridden with the LEO_HOST,
// LEO_PROTOCOL and LEO_TIMEOUT environment variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/darkclainer/leogo/pkg/lang"
	"github.com/darkclainer/leogo/pkg/querier"
	"github.com/darkclainer/leogo/pkg/render"
)

// Exit codes. Stable, scripts depend on them.
const (
	codeErrorArgs     = iota + 1 // usage or argument error
	codeInternalError            // startup failure or unexpected error
	codeTimeout                  // request exceeded the client timeout
	codeTransport                // connection failure or unexpected HTTP status
	codeNotFound                 // service knows no translation for the term
)

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

type options struct {
	WithDefs     bool
	WithExamples bool
	WithPhrases  bool
	Verbose      int
	Language     string
	Query        string
}

func parseArgs(args []string) (*options, error) {
	var opts options
	fs := pflag.NewFlagSet("leo", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: leo [OPTIONS] QUERYSTRING\n\nOptions:\n%s",
			fs.FlagUsages())
	}
	// with-defs is accepted for compatibility but enables no section,
	// the service's definitions category never shipped
	fs.BoolVarP(&opts.WithDefs, "with-defs", "D", false,
		"include any definitions in the result")
	fs.BoolVarP(&opts.WithExamples, "with-examples", "E", false,
		"include examples in the result")
	fs.BoolVarP(&opts.WithPhrases, "with-phrases", "P", false,
		"include phrases in the result")
	fs.CountVarP(&opts.Verbose, "verbose", "v",
		"raise verbosity, repeatable (-v info, -vv debug)")
	fs.StringVarP(&opts.Language, "language", "l", "",
		"source language, two letter code or English name")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one QUERYSTRING argument")
	}
	opts.Query = fs.Arg(0)
	return &opts, nil
}

func newLogger(verbosity int) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	switch {
	case verbosity == 1:
		level = zapcore.InfoLevel
	case verbosity > 1:
		level = zapcore.DebugLevel
	}
	conf := zap.NewDevelopmentConfig()
	conf.Level = zap.NewAtomicLevelAt(level)
	return conf.Build()
}

func remoteConfig() *querier.Config {
	v := viper.New()
	v.SetEnvPrefix("LEO")
	v.AutomaticEnv()
	return &querier.Config{
		Host:     v.GetString("host"),
		Protocol: v.GetString("protocol"),
		Timeout:  v.GetDuration("timeout"),
	}
}

// selectLanguage resolves the -l value, or derives a default from the
// locale when the flag was not given. Unrecognized -l values fall back to
// the first table entry instead of failing, the substitution is logged so
// typos are at least visible.
func selectLanguage(logger *zap.Logger, language, locale string) lang.Language {
	if language == "" {
		l := lang.FromLocale(locale)
		logger.Debug("language derived from locale",
			zap.String("locale", locale),
			zap.String("language", l.Name),
		)
		return l
	}
	l, ok := lang.Resolve(language)
	if !ok {
		logger.Warn("unknown language, falling back",
			zap.String("requested", language),
			zap.String("fallback", l.Name),
		)
	}
	return l
}

func localeFromEnv() string {
	if locale := os.Getenv("LC_ALL"); locale != "" {
		return locale
	}
	return os.Getenv("LANG")
}

// errorCode maps a Translate error to the process exit code.
func errorCode(err error) int {
	var httpErr *querier.HTTPError
	var urlErr *url.Error
	switch {
	case errors.Is(err, querier.ErrNotFound):
		return codeNotFound
	case errors.Is(err, querier.ErrTimeout):
		return codeTimeout
	case errors.As(err, &httpErr), errors.As(err, &urlErr):
		return codeTransport
	default:
		return codeInternalError
	}
}

// printResults runs the query and writes the enabled sections to w.
func printResults(ctx context.Context, w io.Writer, q querier.Querier, opts *options, src lang.Language) error {
	sections, err := q.Translate(ctx, opts.Query, src)
	if err != nil {
		return err
	}
	render.Sections(w, sections, render.Labels(opts.WithExamples, opts.WithPhrases))
	return nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		exitf(codeErrorArgs, "%s\n", err)
	}
	logger, err := newLogger(opts.Verbose)
	if err != nil {
		exitf(codeInternalError, "can not instantiate logger: %s\n", err)
	}
	defer logger.Sync()

	q := querier.NewRemote(nil, nil, remoteConfig())
	src := selectLanguage(logger, opts.Language, localeFromEnv())

	logger.Info("investigating",
		zap.String("query", opts.Query),
		zap.String("language", src.Name),
		zap.String("url", q.ResultURL(src, opts.Query)),
	)
	err = printResults(context.Background(), os.Stdout, q, opts, src)
	_ = q.Close(context.Background())
	if err != nil {
		code := errorCode(err)
		if code == codeNotFound {
			exitf(codeNotFound, "No translation for %q was found\n", opts.Query)
		}
		logger.Error("query failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(code)
	}
}

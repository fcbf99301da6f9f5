package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"docs-scrape/config"
	"docs-scrape/gh"
	"docs-scrape/helpers"
	"docs-scrape/model"
	"docs-scrape/postprocess"
	"docs-scrape/urllist"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stderr)
	os.Exit(report(err, os.Stderr))
}

// usageError is a command line error the flag set has already printed.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// report prints the diagnostic for err and returns the process exit code.
func report(err error, stderr io.Writer) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}

	var usage usageError
	if !errors.As(err, &usage) {
		helpers.Fail(stderr, "%v", err)
	}
	var malformed *urllist.MalformedDocumentError
	if errors.As(err, &malformed) {
		fmt.Fprintf(stderr, "%s\n", malformed.Payload)
	}
	return 1
}

type options struct {
	configPath string
	branch     string
	token      string
	skipFetch  bool
	skipScript bool
	noProgress bool
	verbose    bool
	repoURL    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("docs-scrape", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: docs-scrape [flags] <github-repo-url>\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.branch, "branch", "", "branch to scrape (skips default branch detection)")
	fs.StringVar(&opts.token, "token", "", "GitHub personal access token (defaults to $GITHUB_TOKEN)")
	fs.BoolVar(&opts.skipFetch, "skip-fetch", false, "build the URL list from the previously fetched tree document")
	fs.BoolVar(&opts.skipScript, "skip-script", false, "do not run the post-processing script")
	fs.BoolVar(&opts.noProgress, "no-progress", false, "disable the download progress bar")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return opts, usageError{err}
	}
	if fs.NArg() != 1 {
		err := errors.New("expected exactly one repository URL argument")
		fmt.Fprintln(fs.Output(), err)
		fs.Usage()
		return opts, usageError{err}
	}
	opts.repoURL = fs.Arg(0)
	return opts, nil
}

func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(slog.String("run_id", uuid.NewString()))
	slog.SetDefault(logger)
	return logger
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	// parse before touching config or network
	components, err := helpers.ParseRepoURL(opts.repoURL)
	if err != nil {
		return err
	}

	logger := setupLogger(stderr, opts.verbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.token != "" {
		cfg.Token = opts.token
	}

	client := gh.NewClient(cfg.APIBaseURL, cfg.Token)
	client.Logger = logger
	if cfg.ProgressBar && !opts.noProgress {
		client.Progress = stderr
	}

	switch {
	case opts.branch != "":
		components.Ref = opts.branch
	case opts.skipFetch:
		components.Ref = cfg.DefaultBranch
	default:
		components.Ref = gh.ResolveBranch(ctx, client, components.Owner, components.Repository, cfg.DefaultBranch)
	}

	helpers.Status("Repository: %s/%s", components.Owner, components.Repository)
	helpers.Status("Branch: %s", components.Ref)

	if !opts.skipFetch {
		n, err := gh.SaveTree(ctx, client, components, cfg.TreeDocument)
		if err != nil {
			return err
		}
		helpers.Status("Saved tree document to %s (%s)", cfg.TreeDocument, helpers.FormatBytes(n))
	}

	count, err := urllist.BuildFile(cfg.TreeDocument, cfg.URLList, cfg.RawBaseURL, components)
	if err != nil {
		return err
	}
	helpers.Success("Wrote %d URLs to %s", count, cfg.URLList)

	if opts.skipScript {
		return nil
	}
	return runScript(ctx, cfg, components)
}

func runScript(ctx context.Context, cfg config.Config, components model.RepoURLComponents) error {
	names := helpers.ProviderNamesFor(components.Repository, cfg.ProviderPrefix)
	helpers.Status("Running %s for provider %s", cfg.Script, names.Cap)

	return postprocess.Run(ctx, postprocess.Step{
		Shell:  cfg.Shell,
		Script: cfg.Script,
		Env:    postprocess.Environment(components, names),
	})
}

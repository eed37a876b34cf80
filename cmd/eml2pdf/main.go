package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	eml2pdf "github.com/alnah/go-eml2pdf"
	"github.com/alnah/go-eml2pdf/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	if len(os.Args) < 2 {
		printUsage(env.Stderr)
		os.Exit(ExitUsage)
	}

	switch os.Args[1] {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "eml2pdf %s\n", Version)
		os.Exit(ExitSuccess)
	case "help", "--help", "-h":
		if len(os.Args) > 2 && os.Args[2] == "convert" {
			printConvertUsage(env.Stdout)
		} else {
			printUsage(env.Stdout)
		}
		os.Exit(ExitSuccess)
	case "convert":
		os.Exit(runConvertCommand(os.Args[2:], env))
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage(env.Stderr)
		os.Exit(ExitUsage)
	}
}

// runConvertCommand wires flags, config, and the converter pool, then
// runs the batch. Returned value is the process exit code.
func runConvertCommand(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg, err := loadConfigFor(flags)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	opts, err := buildOptions(flags, cfg, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	workers := cfg.Convert.Workers
	if flags.workers > 0 {
		workers = flags.workers
	}
	poolSize := eml2pdf.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := eml2pdf.NewConverterPool(poolSize, opts...)
	defer pool.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runConvert(ctx, positional, flags, cfg, pool, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// loadConfigFor loads the config named by --config, or defaults.
func loadConfigFor(flags *convertFlags) (*config.Config, error) {
	if flags.common.config == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(flags.common.config)
}

// buildOptions translates flags and config into converter options.
// CLI flags win over config values; EML2PDF_FORCE_TEXT=1 in the
// environment acts like --force-text.
func buildOptions(flags *convertFlags, cfg *config.Config, env *Environment) ([]eml2pdf.Option, error) {
	var opts []eml2pdf.Option

	forceText := cfg.Render.ForceText || flags.forceText
	if env.Getenv("EML2PDF_FORCE_TEXT") == "1" {
		forceText = true
	}
	opts = append(opts, eml2pdf.WithForceText(forceText))

	timeout := flags.timeout
	if timeout == "" {
		timeout = cfg.Convert.Timeout
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid timeout %q: must be positive", timeout)
		}
		opts = append(opts, eml2pdf.WithTimeout(d))
	}

	if page := buildPageSettings(flags, cfg); page != nil {
		if err := page.Validate(); err != nil {
			return nil, err
		}
		opts = append(opts, eml2pdf.WithPageSettings(page))
	}

	return opts, nil
}

// buildPageSettings merges page flags over config. Returns nil when
// neither source customizes the page, leaving library defaults.
func buildPageSettings(flags *convertFlags, cfg *config.Config) *eml2pdf.PageSettings {
	size := cfg.Page.Size
	orientation := cfg.Page.Orientation
	margin := cfg.Page.Margin

	if flags.page.size != "" {
		size = flags.page.size
	}
	if flags.page.orientation != "" {
		orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		margin = flags.page.margin
	}

	if size == "" && orientation == "" && margin == 0 {
		return nil
	}

	page := eml2pdf.DefaultPageSettings()
	if size != "" {
		page.Size = strings.ToLower(size)
	}
	if orientation != "" {
		page.Orientation = strings.ToLower(orientation)
	}
	if margin != 0 {
		page.Margin = margin
	}
	return page
}

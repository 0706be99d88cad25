package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/internal/formprobe"
	"github.com/galactis/web/pkg/logger"
)

const defaultProbeTimeout = 5 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL = flag.String("url", formprobe.DefaultBaseURL, "Base URL of the service")
		ip      = flag.String("ip", formprobe.DefaultIP, "X-Forwarded-For value sent with every request")
		count   = flag.Int("count", formprobe.DefaultCount, "Number of submissions to send")
		form    = flag.String("form", string(model.FormContact), "Form to target: contact or partner")
		limit   = flag.Int("limit", formprobe.DefaultLimit, "Expected submissions accepted per window")
		timeout = flag.Duration("timeout", formprobe.DefaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every response")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		formprobe.ShowHelp()
		return 0
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 2
	}
	log := logger.Named("form-probe")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
	defer cancel()

	cfg := &formprobe.Config{
		BaseURL: *baseURL,
		IP:      *ip,
		Count:   *count,
		Form:    model.FormKind(*form),
		Limit:   *limit,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if _, err := formprobe.Run(ctx, cfg, log); err != nil {
		log.Error(ctx, "probe failed", logger.Error(err))
		return 1
	}
	return 0
}

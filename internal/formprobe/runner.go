// Package formprobe drives the intake endpoints to check the rate-limit
// boundary of a running service.
package formprobe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/galactis/web/pkg/logger"
)

// Report holds the tally of one probe run.
type Report struct {
	Sent        int
	Accepted    int
	Denied      int
	Failed      int
	Statuses    map[int]int
	FirstDenied int // 1-based index of the first 429, 0 when none
	Deviations  []Deviation
	Duration    time.Duration
}

// Run sends cfg.Count valid submissions one after another and verifies the
// observed accept/deny boundary against cfg.Limit. Requests are sequential
// so the n-th response maps to the n-th attempt.
func Run(ctx context.Context, cfg *Config, lg logger.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lg == nil {
		lg = logger.NewNop()
	}
	path, _ := endpoint(cfg.Form)
	url := cfg.BaseURL + path

	lg.Info(ctx, "starting form probe",
		logger.String("url", url),
		logger.String("ip", cfg.IP),
		logger.Int("count", cfg.Count),
		logger.Int("limit", cfg.Limit),
		logger.Duration("timeout", cfg.Timeout))

	client := newHTTPClient(cfg.Timeout)
	report := &Report{Statuses: make(map[int]int)}
	start := time.Now()

	for i := 1; i <= cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("probe interrupted after %d submissions: %w", report.Sent, err)
		}

		resp, err := client.Submit(ctx, url, cfg.IP, payload(cfg.Form, i))
		report.Sent++
		if err != nil {
			report.Failed++
			lg.Warn(ctx, "submission failed", logger.Int("attempt", i), logger.Error(err))
			report.check(i, 0, cfg.Limit)
			continue
		}

		report.Statuses[resp.Status]++
		switch resp.Status {
		case http.StatusOK:
			report.Accepted++
		case http.StatusTooManyRequests:
			report.Denied++
			if report.FirstDenied == 0 {
				report.FirstDenied = i
			}
		default:
			report.Failed++
		}
		report.check(i, resp.Status, cfg.Limit)

		if cfg.Verbose {
			lg.Info(ctx, "response",
				logger.Int("attempt", i),
				logger.Int("status", resp.Status),
				logger.String("message", resp.Message),
				logger.String("error", resp.Error))
		}
	}

	report.Duration = time.Since(start)
	displayReport(ctx, lg, report)
	if !report.Matches() {
		return report, fmt.Errorf("%w: %d of %d responses off the expected boundary",
			ErrMismatch, len(report.Deviations), report.Sent)
	}
	lg.Info(ctx, "rate limit boundary verified")
	return report, nil
}

func displayReport(ctx context.Context, lg logger.Logger, r *Report) {
	lg.Info(ctx, "probe statistics",
		logger.Int("sent", r.Sent),
		logger.Int("accepted", r.Accepted),
		logger.Int("denied", r.Denied),
		logger.Int("failed", r.Failed),
		logger.Int("firstDenied", r.FirstDenied),
		logger.Any("statuses", r.Statuses),
		logger.Duration("duration", r.Duration))
	for _, d := range r.Deviations {
		lg.Warn(ctx, "unexpected status",
			logger.Int("attempt", d.Attempt),
			logger.Int("want", d.Want),
			logger.Int("got", d.Got))
	}
}

package formprobe

import "os"

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`Galactis Form Probe
===================

Checks the per-client submission limit of a running Galactis web service.
Sends -count valid submissions from one forwarded address and verifies that
the first -limit are accepted and the rest are rejected with 429.

Usage:
  go run ./cmd/form-probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -ip string
        X-Forwarded-For value sent with every request (default "203.0.113.7")
  -count int
        Number of submissions to send (default 11)
  -form string
        Form to target: contact or partner (default "contact")
  -limit int
        Expected submissions accepted per window (default 10)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every response
  -help
        Show this help message

Examples:
  # Probe the contact form of a local instance
  go run ./cmd/form-probe

  # Probe the partner form with a fresh address
  go run ./cmd/form-probe -form partner -ip 198.51.100.20

Use a fresh -ip per run: the service keeps the budget for an hour.
`)
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MrJJimenez/jobboard/internal/network"
)

type BackendsCmd struct {
	Check BackendCheckCmd `cmd:"" help:"Probe the health endpoint of each configured backend."`
}

type BackendCheckCmd struct {
	Backend string `help:"Comma-separated backend URLs (default: configured backend_urls)."`
	Timeout int    `help:"Timeout in seconds." default:"15"`
}

type BackendCheckResult struct {
	Backend   string `json:"backend"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (b *BackendCheckCmd) Run(ctx *Context) error {
	backends := ctx.Config.Source(b.Backend).Endpoints
	if len(backends) == 0 {
		return fmt.Errorf("no backends configured")
	}

	timeout := time.Duration(b.Timeout) * time.Second
	results := make([]BackendCheckResult, 0, len(backends))
	for _, backend := range backends {
		results = append(results, checkBackend(backend, timeout))
	}

	return writeBackendResults(ctx, results)
}

func checkBackend(backend string, timeout time.Duration) BackendCheckResult {
	result := BackendCheckResult{Backend: backend}
	fail := func(err error) BackendCheckResult {
		result.Status = "error"
		result.Error = err.Error()
		return result
	}

	rotator, err := network.NewRotator([]string{backend}, time.Minute)
	if err != nil {
		return fail(err)
	}
	client, err := network.NewClient(rotator, timeout)
	if err != nil {
		return fail(err)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Get(reqCtx, "/health", nil)
	if err != nil {
		return fail(err)
	}
	_ = resp.Body.Close()

	result.LatencyMS = time.Since(start).Milliseconds()
	result.Status = fmt.Sprintf("%d", resp.StatusCode)
	return result
}

func writeBackendResults(ctx *Context, results []BackendCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Backend, res.Status, fmt.Sprintf("%d", res.LatencyMS), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "backend\tstatus\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Backend, res.Status, res.LatencyMS, res.Error)
	}
	return tw.Flush()
}

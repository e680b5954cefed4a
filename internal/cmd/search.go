package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MrJJimenez/jobboard/internal/browse"
	"github.com/MrJJimenez/jobboard/internal/export"
	"github.com/MrJJimenez/jobboard/internal/pipeline"
	"github.com/MrJJimenez/jobboard/internal/state"
	"github.com/muesli/termenv"
)

type SearchCmd struct {
	FilterFlags
	Pages   int    `help:"Number of pages to load." default:"1"`
	Format  string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links   string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output  string `name:"output" short:"o" help:"Write output to a file."`
	Backend string `help:"Comma-separated backend URLs (default: in-process dataset)."`
}

func (s *SearchCmd) Run(ctx *Context) error {
	if s.Pages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	session, err := openSession(ctx, s.Backend)
	if err != nil {
		return err
	}
	defer session.Store().Close()

	if err := s.FilterFlags.apply(session.Store()); err != nil {
		return err
	}
	if filter := session.Store().Filter(); !filter.IsEmpty() {
		ctx.Logger.Debug().Interface("filter", filter).Msg("filters applied")
	}

	stopIndicator := startSearchIndicator(ctx)
	snapshot := loadPages(session, s.Pages)
	if stopIndicator != nil {
		stopIndicator()
	}

	if snapshot.Status == state.Failed && len(snapshot.Jobs()) == 0 {
		return pipeline.ErrQueryFailed
	}

	format, err := resolveFormat(ctx, s.Format, s.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(s.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	if err := export.WriteJobs(writer, snapshot.Jobs(), format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	}); err != nil {
		return err
	}

	if snapshot.Status == state.Failed && ctx.UI != nil {
		ctx.UI.Warnf("%v; showing the pages loaded so far", pipeline.ErrQueryFailed)
	}
	printSearchSummary(ctx, snapshot)
	return nil
}

// loadPages runs the initial load and then asks for more until pages are
// loaded, the results are exhausted, or a fetch fails.
func loadPages(session *browse.Session, pages int) state.Snapshot {
	session.Start()
	session.Wait()
	for loaded := 1; loaded < pages; loaded++ {
		if !session.NearEnd(true) {
			break
		}
		session.Wait()
		session.NearEnd(false)
	}
	return session.Store().Snapshot()
}

func printSearchSummary(ctx *Context, snapshot state.Snapshot) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatSearchSummary(snapshot))
}

func formatSearchSummary(snapshot state.Snapshot) string {
	if snapshot.Result == nil {
		return "summary: shown=0 total=0 pages=0"
	}
	pagination := snapshot.Result.Pagination
	return fmt.Sprintf(
		"summary: shown=%d total=%d pages=%d more=%t",
		len(snapshot.Result.Data),
		pagination.Total,
		pagination.Page,
		!snapshot.Result.Exhausted(),
	)
}

func resolveFormat(ctx *Context, format string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if format != "" {
		return export.ParseFormat(format)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startSearchIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KLoading jobs... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/MrJJimenez/jobboard/internal/browse"
	"github.com/MrJJimenez/jobboard/internal/export"
	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/pipeline"
	"github.com/MrJJimenez/jobboard/internal/query"
	"github.com/MrJJimenez/jobboard/internal/state"
)

type BrowseCmd struct {
	FilterFlags
	Backend string `help:"Comma-separated backend URLs (default: in-process dataset)."`
}

const browseHelp = `commands:
  company <name>        filter by company
  experience <years>    minimum experience
  location <a,b>        remote, hybrid, in-office
  roles <a,b>           roles to include
  salary <lpa>          minimum salary, e.g. 10L
  clear [filter]        clear one filter or all of them
  more                  load the next page
  show                  print everything loaded so far
  filters               list the available filter values
  help                  print this help
  quit                  exit`

func (b *BrowseCmd) Run(ctx *Context) error {
	session, err := openSession(ctx, b.Backend)
	if err != nil {
		return err
	}
	defer session.Store().Close()

	if err := b.FilterFlags.apply(session.Store()); err != nil {
		return err
	}

	r := &renderer{ctx: ctx}
	unsubscribe := session.Store().Subscribe(r.onChange)
	defer unsubscribe()

	session.Start()
	session.Wait()

	in := ctx.In
	if in == nil {
		in = strings.NewReader("")
	}
	return runBrowseLoop(ctx, session, r, in)
}

func runBrowseLoop(ctx *Context, session *browse.Session, r *renderer, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(name) {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(ctx.Out, browseHelp)
		case "more", "m":
			if !session.NearEnd(true) {
				reportNoMore(ctx, session.Store().Snapshot())
			}
			session.Wait()
			session.NearEnd(false)
		case "show":
			r.show(session.Store().Snapshot())
		case "filters":
			if err := (&FiltersCmd{}).Run(ctx); err != nil {
				return err
			}
		case "clear", "reset":
			if rest == "" {
				session.Reset()
				session.Wait()
				continue
			}
			applyBrowseFilter(ctx, session, rest, nil)
		default:
			applyBrowseFilter(ctx, session, name, browseValues(name, rest))
		}
	}
	return scanner.Err()
}

// reportNoMore explains why a "more" request did not load anything.
func reportNoMore(ctx *Context, snapshot state.Snapshot) {
	switch snapshot.Status {
	case state.Failed:
		ctx.UI.Errorf("%v", pipeline.ErrQueryFailed)
	case state.Loading:
		ctx.UI.Infof("Loading jobs...")
	default:
		ctx.UI.Infof("No more jobs to load.")
	}
}

func browseValues(name string, rest string) []string {
	if rest == "" {
		return nil
	}
	if dim, err := state.ParseDimension(name); err == nil && dim == state.DimCompany {
		return []string{rest}
	}
	return query.SplitList(strings.Fields(rest))
}

func applyBrowseFilter(ctx *Context, session *browse.Session, name string, values []string) {
	dim, err := state.ParseDimension(name)
	if err != nil {
		ctx.UI.Warnf("unknown command %q (type help)", name)
		return
	}
	changed, err := session.Apply(dim, values)
	if err != nil {
		ctx.UI.Warnf("%s: %v", dim, err)
		return
	}
	if !changed {
		ctx.UI.Infof("Filter unchanged.")
		return
	}
	session.Wait()
}

// renderer prints state transitions as they happen. Jobs already printed
// are not printed again when a page is appended.
type renderer struct {
	ctx *Context

	mu     sync.Mutex
	status state.Status
	shown  int
}

func (r *renderer) onChange(snapshot state.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot.Status == state.Loading && snapshot.Result == nil {
		r.shown = 0
	}
	// Every fetch passes through Loading, so only transitions are rendered.
	if snapshot.Status == r.status {
		return
	}
	r.status = snapshot.Status

	switch snapshot.Status {
	case state.Loading:
		r.ctx.UI.Infof("Loading jobs...")
	case state.Failed:
		r.ctx.UI.Errorf("%v", pipeline.ErrQueryFailed)
	case state.Succeeded:
		jobs := snapshot.Jobs()
		if r.shown > len(jobs) {
			r.shown = 0
		}
		r.write(jobs[r.shown:])
		r.shown = len(jobs)
		r.footer(snapshot)
	}
}

func (r *renderer) show(snapshot state.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch snapshot.Status {
	case state.Loading:
		r.ctx.UI.Infof("Loading jobs...")
		return
	case state.Failed:
		r.ctx.UI.Errorf("%v", pipeline.ErrQueryFailed)
		if len(snapshot.Jobs()) == 0 {
			return
		}
	}
	r.write(snapshot.Jobs())
	r.footer(snapshot)
}

func (r *renderer) write(jobs []models.Job) {
	format := export.FormatMarkdown
	if r.ctx.JSONOutput {
		format = export.FormatJSON
	} else if r.ctx.PlainText {
		format = export.FormatTSV
	}
	if err := export.WriteJobs(r.ctx.Out, jobs, format, export.WriteOptions{}); err != nil {
		r.ctx.Logger.Warn().Err(err).Msg("render jobs")
	}
}

func (r *renderer) footer(snapshot state.Snapshot) {
	if snapshot.Result == nil || len(snapshot.Result.Data) == 0 {
		return
	}
	hint := ""
	if snapshot.CanLoadMore() {
		hint = " (type more for the next page)"
	}
	r.ctx.UI.Infof("Showing %d of %d jobs%s", len(snapshot.Result.Data), snapshot.Result.Pagination.Total, hint)
}

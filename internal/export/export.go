package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/ui"
	"github.com/PuerkitoBio/goquery"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

const NoResults = "No results for this category at the moment"

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func WriteJobs(w io.Writer, jobs []models.Job, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatCSV:
		return writeCSV(w, jobs, ',')
	case FormatTSV:
		return writeCSV(w, jobs, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, jobs)
	default:
		return writeTable(w, jobs, opts)
	}
}

func writeJSON(w io.Writer, jobs []models.Job) error {
	if jobs == nil {
		jobs = []models.Job{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jobs)
}

func writeCSV(w io.Writer, jobs []models.Job, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := writer.Write(csvRow(job)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, NoResults)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, job := range jobs {
		fmt.Fprintln(tw, strings.Join(tableRow(job, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, jobs []models.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, NoResults+".")
		return err
	}
	for _, job := range jobs {
		urlLine := "  URL: -"
		if url := safe(job.URL); url != "" {
			urlLine = fmt.Sprintf("  URL: [View job](<%s>)", url)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(job.Company), safe(job.Role)),
			fmt.Sprintf("  Location: %s", safe(job.Location)),
			urlLine,
		}
		if salary := SalaryText(job); salary != "" {
			lines = append(lines, "  "+salary)
		}
		if job.MinExperience != nil {
			lines = append(lines, fmt.Sprintf("  Minimum Experience: %d Years", *job.MinExperience))
		}
		if summary := PlainText(job.Description); summary != "" {
			lines = append(lines, fmt.Sprintf("  About: %s", summary))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// SalaryText renders the salary range the way job cards show it, or "" when
// the job lists no salary.
func SalaryText(job models.Job) string {
	const (
		prefix = "Estimated Salary"
		suffix = "LPA"
	)
	currency := safe(job.Currency)
	switch {
	case job.MinSalary != nil && job.MaxSalary != nil:
		return fmt.Sprintf("%s: %s %d - %d %s", prefix, currency, *job.MinSalary, *job.MaxSalary, suffix)
	case job.MinSalary != nil:
		return fmt.Sprintf("%s: %s %d %s", prefix, currency, *job.MinSalary, suffix)
	case job.MaxSalary != nil:
		return fmt.Sprintf("%s: %s %d %s", prefix, currency, *job.MaxSalary, suffix)
	default:
		return ""
	}
}

// PlainText strips markup from a job description and collapses whitespace.
func PlainText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	text := value
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(value)); err == nil {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

func csvHeader() []string {
	return []string{
		"id",
		"company",
		"role",
		"location",
		"min_salary",
		"max_salary",
		"currency",
		"min_experience",
		"max_experience",
		"url",
		"description",
	}
}

func csvRow(job models.Job) []string {
	return []string{
		job.ID,
		job.Company,
		job.Role,
		job.Location,
		intString(job.MinSalary),
		intString(job.MaxSalary),
		job.Currency,
		intString(job.MinExperience),
		intString(job.MaxExperience),
		job.URL,
		PlainText(job.Description),
	}
}

func intString(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableHeader() []string {
	return []string{
		"company",
		"role",
		"location",
		"salary",
		"min_exp",
		"url",
	}
}

func tableRow(job models.Job, output *termenv.Output, opts WriteOptions) []string {
	url := safe(job.URL)
	displayURL := "-"
	if url != "" {
		displayURL = url
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(url)
		}
		displayURL = ui.ColorizeLink(output, opts.ColorEnabled, displayURL)
		if opts.Hyperlinks {
			displayURL = hyperlink(url, displayURL)
		}
	}
	return []string{
		safe(job.Company),
		safe(job.Role),
		safe(job.Location),
		salaryRange(job),
		dash(intString(job.MinExperience)),
		displayURL,
	}
}

func salaryRange(job models.Job) string {
	switch {
	case job.MinSalary != nil && job.MaxSalary != nil:
		return fmt.Sprintf("%s %d-%d", safe(job.Currency), *job.MinSalary, *job.MaxSalary)
	case job.MinSalary != nil:
		return fmt.Sprintf("%s %d+", safe(job.Currency), *job.MinSalary)
	case job.MaxSalary != nil:
		return fmt.Sprintf("%s <=%d", safe(job.Currency), *job.MaxSalary)
	default:
		return "-"
	}
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}

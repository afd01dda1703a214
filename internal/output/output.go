// Package output renders lookup results as text, short values or JSON.
//
// Rendering never mixes with diagnostics: results go to the writer given at
// construction (stdout in the CLI), logging stays on stderr.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jroosing/hound/internal/client"
	"github.com/jroosing/hound/internal/config"
	"github.com/jroosing/hound/internal/dnswire"
)

// Renderer writes lookup results in the configured format.
type Renderer struct {
	Format       config.OutputFormat
	ShowDuration bool
	W            io.Writer
}

// Result pairs a request with its response for rendering.
type Result struct {
	Request  client.Request
	Response *client.Response
}

// Render writes all results. The returned count is the number of record
// lines produced, which the CLI uses for the empty-short-output exit code.
func (r *Renderer) Render(results []Result, elapsed time.Duration) (int, error) {
	switch r.Format {
	case config.OutputShort:
		return r.renderShort(results)
	case config.OutputJSON:
		return r.renderJSON(results, elapsed)
	default:
		return r.renderText(results, elapsed)
	}
}

func (r *Renderer) renderText(results []Result, elapsed time.Duration) (int, error) {
	lines := 0
	for _, res := range results {
		msg := res.Response.Message
		if rcode := msg.Header.RCode(); rcode != dnswire.RCodeNoError {
			fmt.Fprintf(r.W, "; %s received %s for %s %s\n",
				res.Request.Type, rcode, msg.Question.Name, msg.Question.Type)
		}
		for _, rr := range msg.AllRecords() {
			if rr.Data.Type() == dnswire.TypeOPT {
				continue
			}
			fmt.Fprintf(r.W, "%s\t%s\t%s\t%s\n",
				rr.Data.Type(), presentName(rr.Name), FormatTTL(rr.TTL), rr.Data.Value())
			lines++
		}
	}
	if r.ShowDuration {
		fmt.Fprintf(r.W, "Ran in %dms\n", elapsed.Milliseconds())
	}
	return lines, nil
}

func (r *Renderer) renderShort(results []Result) (int, error) {
	lines := 0
	for _, res := range results {
		for _, rr := range res.Response.Message.Answers {
			if rr.Data.Type() == dnswire.TypeOPT {
				continue
			}
			fmt.Fprintln(r.W, rr.Data.Value())
			lines++
		}
	}
	return lines, nil
}

func presentName(name string) string {
	if name == "" {
		return "."
	}
	return name + "."
}

// FormatTTL renders a TTL the way humans read it: plain seconds under a
// minute, then h/m/s components with two-digit padding.
func FormatTTL(seconds uint32) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh%02dm%02ds",
		seconds/3600, seconds%3600/60, seconds%60)
}

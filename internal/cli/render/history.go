package render

import (
	"fmt"
	"io"
	"time"

	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

// HistoryRenderer renders the journal
type HistoryRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewHistoryRenderer creates a new history renderer
func NewHistoryRenderer(out io.Writer, format config.OutputFormat) *HistoryRenderer {
	return &HistoryRenderer{
		out:    out,
		format: format,
	}
}

func entrySummary(e *models.JournalEntry) string {
	switch e.Op {
	case models.OpGenesis:
		return fmt.Sprintf("founded %q with governor %s", e.Genesis.Name, ShortAddress(e.Genesis.Founder))
	case models.OpPropose:
		p := e.Proposal
		target := ""
		if t, err := p.MotionTarget(); err == nil {
			target = t.String()
		}
		return fmt.Sprintf("#%d %s %s", e.MotionID, p.Kind, target)
	default:
		return fmt.Sprintf("#%d", e.MotionID)
	}
}

// RenderHistory renders journal entries and their verification result
func (r *HistoryRenderer) RenderHistory(result *usecase.ShowHistoryResult) error {
	if ok, err := Structured(r.out, r.format, result); ok {
		return err
	}

	if len(result.Entries) == 0 {
		fmt.Fprintln(r.out, "No journal entries found")
	} else {
		rows := TableData{}
		for _, e := range result.Entries {
			rows = append(rows, []string{
				fmt.Sprintf("%d", e.Seq),
				e.At.Format(time.RFC3339),
				motionStyle.Sprint(e.Op),
				ShortAddress(e.Caller),
				entrySummary(e),
				labelStyle.Sprint(e.Hash.Hex()[:10]),
			})
		}
		fmt.Fprintln(r.out, renderTable(rows, ""))
	}

	fmt.Fprintf(r.out, "\n📁 journal: %s (%d entries)\n", getRelativePath(result.Location), result.Total)
	if result.Verified {
		fmt.Fprintln(r.out, FormatSuccess("Hash chain and replay verified"))
	} else {
		fmt.Fprintln(r.out, FormatWarning("Journal failed verification: "+result.Problem))
	}
	return nil
}

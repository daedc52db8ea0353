package interactive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectMotion selects a motion from a list
func (s *SelectorAdapter) SelectMotion(ctx context.Context, motions []*usecase.MotionView, prompt string) (*usecase.MotionView, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode, pass a motion id")
	}

	if len(motions) == 0 {
		return nil, fmt.Errorf("no motions provided for selection")
	}

	if len(motions) == 1 {
		return motions[0], nil
	}

	options := formatMotionOptions(motions, s.now())

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return motions[index], nil
}

func (s *SelectorAdapter) now() time.Time {
	if s.config.At != nil {
		return *s.config.At
	}
	return time.Now().UTC()
}

// formatMotionOptions renders "#3 elect-representative 0x1234…abcd (1/2 votes, 5h left) description"
func formatMotionOptions(motions []*usecase.MotionView, now time.Time) []string {
	options := make([]string, len(motions))
	for i, v := range motions {
		m := v.Motion
		id := color.New(color.FgWhite, color.Bold).Sprintf("#%d", m.ID)
		kind := color.New(color.FgCyan).Sprint(m.Kind.String())
		target := color.New(color.FgBlue).Sprint(m.Target.String())
		tally := color.New(color.FgYellow).Sprintf("(%d/%d votes, %s left)",
			v.Quorum.Cast, v.Quorum.Required, m.Deadline.Sub(now).Round(time.Minute))

		parts := []string{id, kind, target, tally}
		if desc := strings.TrimSpace(m.Description); desc != "" {
			parts = append(parts, desc)
		}
		options[i] = strings.Join(parts, " ")
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.MotionSelector = (*SelectorAdapter)(nil)

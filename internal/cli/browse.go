package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens the interactive tier browser.
func (c *CLI) browseCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "browse [tree.json]",
		Short: "Browse the tiers of a talent tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options(cmd, &flags)

			payload, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			nodes, err := runner.Decode(ctx, payload, opts)
			if err != nil {
				return err
			}
			l, err := runner.Layout(ctx, nodes, opts)
			if err != nil {
				return err
			}
			if len(l.Tiers) == 0 {
				printInfo("Tree has no talents")
				return nil
			}

			p := tea.NewProgram(NewTierBrowserModel(args[0], l), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// TierBrowserModel - Interactive tier browser
// =============================================================================

// TierGroup is one tier with its talents and the divider drawn above it.
type TierGroup struct {
	Tier    graph.Tier
	Divider *graph.Divider
	Talents []graph.Node
}

// TierBrowserModel is the bubbletea model for browsing tiers.
type TierBrowserModel struct {
	Title  string
	Groups []TierGroup
	Cursor int
	Height int
}

// NewTierBrowserModel groups the talents of l by tier.
func NewTierBrowserModel(title string, l graph.Layout) TierBrowserModel {
	byPoints := make(map[int][]graph.Node)
	for _, n := range l.TalentNodes() {
		byPoints[n.Data.RequiredPoints] = append(byPoints[n.Data.RequiredPoints], n)
	}

	groups := make([]TierGroup, 0, len(l.Tiers))
	for _, t := range l.Tiers {
		talents := byPoints[t.RequiredPoints]
		slices.SortFunc(talents, func(a, b graph.Node) int {
			if c := cmp.Compare(a.Data.Row, b.Data.Row); c != 0 {
				return c
			}
			return cmp.Compare(a.Data.Column, b.Data.Column)
		})
		g := TierGroup{Tier: t, Talents: talents}
		for i := range l.Dividers {
			if l.Dividers[i].RequiredPoints == t.RequiredPoints {
				g.Divider = &l.Dividers[i]
			}
		}
		groups = append(groups, g)
	}
	return TierBrowserModel{Title: title, Groups: groups, Height: 15}
}

func (m TierBrowserModel) Init() tea.Cmd {
	return nil
}

func (m TierBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Groups)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Groups)-1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-len(m.Groups)-10, 5)
	}
	return m, nil
}

func (m TierBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ tier  q quit"))
	b.WriteString("\n\n")

	for i, g := range m.Groups {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		divider := ""
		if g.Divider != nil {
			divider = "  divider at row " + ftoa(g.Divider.Row)
		}
		line := fmt.Sprintf("%s%3d pts  rows %s–%s  %d talents", cursor,
			g.Tier.RequiredPoints, ftoa(g.Tier.MinRow), ftoa(g.Tier.MaxRow), g.Tier.Count)

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString(listDimStyle.Render(divider))
		b.WriteString("\n")
	}

	if len(m.Groups) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(m.talentTable(m.Groups[m.Cursor]))
	b.WriteString("\n")
	return b.String()
}

// talentTable renders the talents of g, at most Height rows.
func (m TierBrowserModel) talentTable(g TierGroup) string {
	talents := g.Talents
	more := 0
	if m.Height > 0 && len(talents) > m.Height {
		more = len(talents) - m.Height
		talents = talents[:m.Height]
	}

	rows := make([][]string, 0, len(talents))
	for _, n := range talents {
		name := n.Data.Name
		if name == "" {
			name = iconNone
		}
		rows = append(rows, []string{
			strconv.Itoa(n.Data.OrderID),
			name,
			strings.TrimSuffix(n.Type, "Node"),
			ftoa(n.Data.Row) + ", " + ftoa(n.Data.Column),
			ftoa(n.Position.X) + ", " + ftoa(n.Position.Y),
			strconv.Itoa(len(n.Data.ChildIDs)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Kind", "Row, Col", "Position", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if row < len(talents) && talents[row].Data.PreFilled {
				return styleGold
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})

	out := t.Render()
	if more > 0 {
		out += "\n" + listDimStyle.Render(fmt.Sprintf("  … %d more", more))
	}
	return out
}

package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/flockbooks/flockbooks/overview"
	"github.com/flockbooks/flockbooks/statement"
)

const standardMargin = 2

type styles struct {
	docStyle    lipgloss.Style
	titleStyle  lipgloss.Style
	errorStyle  lipgloss.Style
	statusStyle lipgloss.Style
	totalsStyle lipgloss.Style
	mutedStyle  lipgloss.Style
}

func createStyles(theme Theme) styles {
	return styles{
		docStyle: lipgloss.NewStyle().Margin(1, standardMargin),
		titleStyle: lipgloss.NewStyle().Foreground(
			lipgloss.AdaptiveColor{Light: "#000000", Dark: string(theme.Primary)},
		).Bold(true),
		errorStyle:  lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
		statusStyle: lipgloss.NewStyle().Foreground(theme.Success),
		totalsStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(theme.Border).
			Bold(true),
		mutedStyle: lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

func createHelpModel(theme Theme) help.Model {
	helpModel := help.New()
	helpModel.ShortSeparator = " + "
	helpModel.Styles = help.Styles{
		Ellipsis:       lipgloss.NewStyle().Foreground(theme.SecondaryText),
		ShortKey:       lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		ShortDesc:      lipgloss.NewStyle().Foreground(theme.Text),
		ShortSeparator: lipgloss.NewStyle().Foreground(theme.SecondaryText),
		FullKey:        lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		FullDesc:       lipgloss.NewStyle().Foreground(theme.Text),
		FullSeparator:  lipgloss.NewStyle().Foreground(theme.SecondaryText),
	}
	return helpModel
}

func overviewStyles(theme Theme) overview.Styles {
	return overview.Styles{
		DebitStyle:     lipgloss.NewStyle().Foreground(theme.Debit),
		CreditStyle:    lipgloss.NewStyle().Foreground(theme.Credit),
		TreeRootStyle:  lipgloss.NewStyle().Foreground(theme.SecondaryText),
		GroupTypeStyle: lipgloss.NewStyle().Foreground(theme.Text),
		GroupStyle:     lipgloss.NewStyle().Foreground(theme.Primary),
		MutedStyle:     lipgloss.NewStyle().Foreground(theme.Muted).Italic(true),
		SummaryStyle:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(1, standardMargin),
	}
}

func statementStyles(theme Theme) statement.Styles {
	return statement.Styles{
		Header:   lipgloss.NewStyle().Bold(true),
		Child:    lipgloss.NewStyle().PaddingLeft(standardMargin),
		Selected: lipgloss.NewStyle().Foreground(theme.Primary),
		Debit:    lipgloss.NewStyle().Foreground(theme.Debit),
		Credit:   lipgloss.NewStyle().Foreground(theme.Credit),
		Summary:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1),
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flockbooks/flockbooks/groups"
)

// groupsCmd represents the groups command.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Accounting group commands",
	Long:  `Commands for the chart of accounts groups.`,
}

// groupsListCmd represents the groups list command.
var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups as an indented tree",
	Long:  `List all groups depth first, children indented under their parent.`,
	RunE:  groupsListRun,
}

func init() {
	groupsCmd.AddCommand(groupsListCmd)
	addOutputFlag(groupsListCmd)
}

// unresolvedParentPolicy reads the configured policy for groups whose parent
// is missing.
func unresolvedParentPolicy() (groups.UnresolvedParentPolicy, error) {
	return groups.ParsePolicy(viper.GetString("unresolved_parent"))
}

func groupsListRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	policy, err := unresolvedParentPolicy()
	if err != nil {
		return err
	}

	gs, err := client.Groups(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch groups: %w", err)
	}

	flat, err := groups.BuildFlat(gs, groups.WithUnresolvedParent(policy))
	if err != nil {
		return fmt.Errorf("failed to build group tree: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), flat)
	case tableOutputFormat:
		return outputGroupsTable(cmd.OutOrStdout(), flat)
	default:
		return errors.New("unsupported output format")
	}
}

func outputGroupsTable(w io.Writer, flat []groups.FlatGroup) error {
	t := createStyledTable("ID", "GROUP", "TYPE", "LEVEL")

	for _, g := range flat {
		t.Row(g.ID, g.DisplayName, placeholder(g.Type), strconv.Itoa(g.Level))
	}

	fmt.Fprintln(w, t)

	return nil
}

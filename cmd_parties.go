package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/export"
	"github.com/flockbooks/flockbooks/statement"
)

// vendorCmd represents the vendor command.
var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Vendor commands",
	Long:  `Commands for suppliers: bird farms, feed and the like.`,
}

var vendorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vendors with their balances",
	RunE:  vendorListRun,
}

var vendorExportCmd = &cobra.Command{
	Use:   "export <vendor-id>",
	Short: "Export a vendor ledger to xlsx or pdf",
	Args:  cobra.ExactArgs(1),
	RunE:  vendorExportRun,
}

// customerCmd represents the customer command.
var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Customer commands",
	Long:  `Commands for buyers of birds.`,
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers with their balances",
	RunE:  customerListRun,
}

var customerExportCmd = &cobra.Command{
	Use:   "export <customer-id>",
	Short: "Export a customer ledger to xlsx or pdf",
	Args:  cobra.ExactArgs(1),
	RunE:  customerExportRun,
}

func init() {
	vendorCmd.AddCommand(vendorListCmd, vendorExportCmd)
	customerCmd.AddCommand(customerListCmd, customerExportCmd)

	addOutputFlag(vendorListCmd)
	addOutputFlag(customerListCmd)

	for _, c := range []*cobra.Command{vendorExportCmd, customerExportCmd} {
		addRangeFlags(c)
		c.Flags().String("format", "xlsx", "export format: xlsx or pdf")
	}
}

// party is a vendor or a customer as listed by the CLI.
type party struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	Detail      string `json:"detail,omitempty"`
	LedgerID    string `json:"ledgerId,omitempty"`
	Balance     string `json:"balance"`
	BalanceType string `json:"balanceType,omitempty"`
}

func convertVendor(v api.Vendor) party {
	return party{
		ID:          v.ID,
		Name:        v.Name,
		Phone:       v.Phone,
		Detail:      v.Category,
		LedgerID:    v.LedgerID,
		Balance:     v.Balance.StringFixed(2),
		BalanceType: statement.Suffix(v.Balance, v.BalanceType),
	}
}

func convertCustomer(c api.Customer) party {
	return party{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Detail:      c.Place,
		LedgerID:    c.LedgerID,
		Balance:     c.Balance.StringFixed(2),
		BalanceType: statement.Suffix(c.Balance, c.BalanceType),
	}
}

func vendorListRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	vendors, err := client.Vendors(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch vendors: %w", err)
	}

	parties := make([]party, len(vendors))
	for i, v := range vendors {
		parties[i] = convertVendor(v)
	}

	return outputParties(cmd.OutOrStdout(), outputFormat, "CATEGORY", parties)
}

func customerListRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	customers, err := client.Customers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch customers: %w", err)
	}

	parties := make([]party, len(customers))
	for i, c := range customers {
		parties[i] = convertCustomer(c)
	}

	return outputParties(cmd.OutOrStdout(), outputFormat, "PLACE", parties)
}

func outputParties(w io.Writer, outputFormat, detailHeader string, parties []party) error {
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(w, parties)
	case tableOutputFormat:
		t := createStyledTable("ID", "NAME", "PHONE", detailHeader, "LEDGER", "BALANCE", "DR/CR")
		for _, p := range parties {
			t.Row(p.ID, p.Name, placeholder(p.Phone), placeholder(p.Detail), placeholder(p.LedgerID), p.Balance, p.BalanceType)
		}
		fmt.Fprintln(w, t)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}

func vendorExportRun(cmd *cobra.Command, args []string) error {
	vendors, err := client.Vendors(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch vendors: %w", err)
	}

	for _, v := range vendors {
		if v.ID == args[0] {
			return exportPartyLedger(cmd, v.Name, v.LedgerID, export.VendorLedger)
		}
	}
	return fmt.Errorf("vendor %s not found", args[0])
}

func customerExportRun(cmd *cobra.Command, args []string) error {
	customers, err := client.Customers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch customers: %w", err)
	}

	for _, c := range customers {
		if c.ID == args[0] {
			return exportPartyLedger(cmd, c.Name, c.LedgerID, export.CustomerLedger)
		}
	}
	return fmt.Errorf("customer %s not found", args[0])
}

func exportPartyLedger(cmd *cobra.Command, name, ledgerID string, build func(string, []api.LedgerEntry) export.Table) error {
	if ledgerID == "" {
		return fmt.Errorf("%s has no ledger", name)
	}

	formatValue, _ := cmd.Flags().GetString("format")
	f, err := export.ParseFormat(formatValue)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	entries, _, err := client.LedgerTransactions(cmd.Context(), ledgerID, r)
	if err != nil {
		return fmt.Errorf("failed to fetch ledger of %s: %w", name, err)
	}

	path, ok := export.Save(currentConfig().OutputDir, export.Filename(name, "ledger", time.Now(), f), f, build(name, entries))
	if !ok {
		return fmt.Errorf("export of %s ledger failed, see log", name)
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

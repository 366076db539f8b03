package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/export"
)

// addRangeFlags adds --from, --to and --period to commands filtered by date.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().String("period", "", "month, year or fiscal, containing today (overridden by --from/--to)")
}

// rangeFromFlags resolves the date filter. Explicit dates win over --period;
// neither gives an unfiltered range.
func rangeFromFlags(cmd *cobra.Command, now time.Time) (api.Range, error) {
	var r api.Range

	if periodType, _ := cmd.Flags().GetString("period"); periodType != "" {
		switch periodType {
		case monthlyPeriodType, annualPeriodType, fiscalPeriodType:
		default:
			return r, fmt.Errorf("invalid period: %s (must be month, year or fiscal)", periodType)
		}
		var p Period
		p.setPeriod(now, periodType, time.Month(viper.GetInt("fiscal_year_start_month")))
		r = p.rng()
	}

	for name, dst := range map[string]*time.Time{"from": &r.From, "to": &r.To} {
		v, _ := cmd.Flags().GetString(name)
		if v == "" {
			continue
		}
		t, err := time.ParseInLocation(api.DateLayout, v, now.Location())
		if err != nil {
			return r, fmt.Errorf("invalid --%s date %q (expected YYYY-MM-DD): %w", name, v, err)
		}
		*dst = t
	}

	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, fmt.Errorf("--to %s is before --from %s", r.To.Format(api.DateLayout), r.From.Format(api.DateLayout))
	}

	return r, nil
}

// addExportFlag adds --export to commands that can write their result to a
// file.
func addExportFlag(cmd *cobra.Command) {
	cmd.Flags().String("export", "", "also export to a file: xlsx or pdf")
}

// saveExport writes t when --export is set. A failed export is an error so
// the command exits non-zero.
func saveExport(cmd *cobra.Command, entity, kind string, t export.Table) error {
	value, _ := cmd.Flags().GetString("export")
	if value == "" {
		return nil
	}

	f, err := export.ParseFormat(value)
	if err != nil {
		return err
	}

	cfg := currentConfig()
	path, ok := export.Save(cfg.OutputDir, export.Filename(entity, kind, time.Now(), f), f, t)
	if !ok {
		return fmt.Errorf("export of %s %s failed, see log", entity, kind)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", path)
	return nil
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/jobhawk/jobhawk/internal/data"
	"github.com/jobhawk/jobhawk/internal/domain/model"
)

func runStats(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := data.NewFileStateStore(ctx.Config.State.Dir)
	if err != nil {
		return err
	}
	stats, err := store.LoadStats(ctx.Ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "total\t%d\n", stats.TotalApplications); err != nil {
		return err
	}
	if err := writef(w, "applied\t%d\n", stats.TotalApplied); err != nil {
		return err
	}
	if err := writef(w, "failed\t%d\n", stats.TotalFailed); err != nil {
		return err
	}
	if err := writef(w, "skipped\t%d\n", stats.TotalSkipped); err != nil {
		return err
	}
	if err := writef(w, "success rate\t%.1f%%\n", stats.SuccessRate()*100); err != nil {
		return err
	}
	if !stats.LastCycleAt.IsZero() {
		if err := writef(w, "last cycle\t%s\n", stats.LastCycleAt.Format("2006-01-02 15:04:05")); err != nil {
			return err
		}
	}
	if err := writeCountMap(w, "platform", stats.ByPlatform); err != nil {
		return err
	}
	if err := writeCountMap(w, "company", stats.ByCompany); err != nil {
		return err
	}
	return w.Flush()
}

func runDailyReport(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("daily-report", flag.ContinueOnError)
	days := fs.Int("days", 14, "number of most recent days to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := data.NewFileStateStore(ctx.Config.State.Dir)
	if err != nil {
		return err
	}
	stats, err := store.LoadStats(ctx.Ctx)
	if err != nil {
		return err
	}

	dates := make([]string, 0, len(stats.ByDate))
	for d := range stats.ByDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > *days {
		dates = dates[:*days]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "DATE\tAPPLIED\n"); err != nil {
		return err
	}
	for _, d := range dates {
		if err := writef(w, "%s\t%d\n", d, stats.ByDate[d]); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runRetry(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("retry", flag.ContinueOnError)
	clear := fs.Bool("clear", false, "empty the retry set")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := data.NewFileStateStore(ctx.Config.State.Dir)
	if err != nil {
		return err
	}

	if *clear {
		if err := store.SaveRetrySet(ctx.Ctx, map[string]model.RetryEntry{}); err != nil {
			return err
		}
		return writef(os.Stdout, "retry set cleared\n")
	}

	entries, err := store.LoadRetrySet(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return writef(os.Stdout, "retry set is empty\n")
	}

	fingerprints := make([]string, 0, len(entries))
	for fp := range entries {
		fingerprints = append(fingerprints, fp)
	}
	sort.Strings(fingerprints)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "FINGERPRINT\tPLATFORM\tATTEMPTS\tREASON\n"); err != nil {
		return err
	}
	for _, fp := range fingerprints {
		e := entries[fp]
		if err := writef(w, "%s\t%s\t%d\t%s\n", e.Fingerprint, e.Platform, e.AttemptCount, e.Reason); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runApplied(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("applied", flag.ContinueOnError)
	contains := fs.String("contains", "", "check whether an id is in the ledger")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := data.NewFileStateStore(ctx.Config.State.Dir)
	if err != nil {
		return err
	}
	ids, err := store.LoadAppliedIDs(ctx.Ctx)
	if err != nil {
		return err
	}

	if *contains != "" {
		if ids[*contains] {
			return writef(os.Stdout, "%s: applied\n", *contains)
		}
		return writef(os.Stdout, "%s: not found\n", *contains)
	}
	return writef(os.Stdout, "%d ids in the applied ledger\n", len(ids))
}

func writeCountMap(w io.Writer, label string, counts map[string]int) error {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writef(w, "%s %s\t%d\n", label, k, counts[k]); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/jobhawk/jobhawk/internal/core"
	"github.com/jobhawk/jobhawk/internal/data"
	"github.com/jobhawk/jobhawk/internal/domain/model"
)

func openArchive(ctx *commandContext) (*data.HistoryRepo, func(), error) {
	if !ctx.Config.State.HistoryEnabled() {
		return nil, nil, errors.New("history archive is disabled (STATE_HISTORY_DB_PATH is empty)")
	}
	db, err := data.OpenHistoryDB(ctx.Config.State.HistoryDBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if cerr := db.Close(); cerr != nil {
			ctx.Logger.Error("close history db failed", "error", cerr)
		}
	}
	return data.NewHistoryRepo(db, &data.RealTimeProvider{}), cleanup, nil
}

func runHistory(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	platform := fs.String("platform", "", "filter by platform")
	status := fs.String("status", "", "filter by status (applied, failed, skipped)")
	limit := fs.Int("limit", 25, "maximum records to show")
	showStats := fs.Bool("stats", false, "show archive-wide aggregates instead of records")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repo, cleanup, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if *showStats {
		return printArchiveStats(ctx, repo)
	}

	records, err := repo.List(ctx.Ctx, core.HistoryQuery{
		Platform: *platform,
		Status:   model.ApplicationStatus(*status),
		Limit:    *limit,
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return writef(os.Stdout, "no matching records\n")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "PLATFORM\tCOMPANY\tTITLE\tSTATUS\tSCORE\tATTEMPTS\tLAST ATTEMPT\n"); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		if err := writef(w, "%s\t%s\t%s\t%s\t%.1f\t%d\t%s\n",
			r.Platform, r.Company, r.Title, r.Status, r.Score, r.AttemptCount,
			r.LastAttemptAt.Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runExport(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	platform := fs.String("platform", "", "filter by platform")
	status := fs.String("status", "", "filter by status (applied, failed, skipped)")
	out := fs.String("out", "", "write to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repo, cleanup, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := repo.List(ctx.Ctx, core.HistoryQuery{
		Platform: *platform,
		Status:   model.ApplicationStatus(*status),
	})
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	payload = append(payload, '\n')

	if *out == "" {
		_, err = os.Stdout.Write(payload)
		return err
	}
	return os.WriteFile(*out, payload, 0o644)
}

func printArchiveStats(ctx *commandContext, repo *data.HistoryRepo) error {
	stats, err := repo.Stats(ctx.Ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "total\t%d\n", stats.Total); err != nil {
		return err
	}
	if err := writef(w, "last 7 days\t%d\n", stats.RecentWeek); err != nil {
		return err
	}
	for _, group := range []struct {
		label  string
		counts map[string]int
	}{
		{"status", stats.ByStatus},
		{"platform", stats.ByPlatform},
	} {
		keys := make([]string, 0, len(group.counts))
		for k := range group.counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writef(w, "%s %s\t%d\n", group.label, k, group.counts[k]); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

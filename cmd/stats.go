package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/repositories"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

type statsReport struct {
	Plays    int                 `json:"plays"`
	Top      []models.PlayCount  `json:"top"`
	Recent   []*models.PlayEvent `json:"recent"`
	LastScan *models.ScanRecord  `json:"lastScan,omitempty"`
}

// Stats prints the most played songs, recent plays and the last library scan.
// --clear deletes the listening history instead.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	plays := repositories.NewHistoryRepository(db)
	scans := repositories.NewScanRepository(db)

	if cmd.Bool("clear") {
		n, err := plays.Clear()
		if err != nil {
			return err
		}
		if _, err := repositories.Purge(db, "plays"); err != nil {
			return err
		}
		return r.writePlain("✓ Cleared %d plays\n", n)
	}

	limit := cmd.Int("limit")
	var report statsReport
	if report.Plays, err = plays.Count(); err != nil {
		return err
	}
	if report.Top, err = plays.TopPlayed(limit); err != nil {
		return err
	}
	if report.Recent, err = plays.Recent(limit); err != nil {
		return err
	}
	if report.LastScan, err = scans.Latest(); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Listening history (%d plays)", report.Plays))
	if report.Plays == 0 {
		r.writePlain("Nothing played yet. Run 'nmp play' to start listening.\n")
	} else {
		r.writePlainln("Most played")
		t := r.newTable("#", "Title", "Artist", "Plays", "Last played")
		for i, c := range report.Top {
			t.AppendRow(table.Row{i + 1, c.Title, c.Artist.String(), c.Plays, c.LastPlayed.Local().Format(time.DateTime)})
		}
		t.Render()

		r.writePlainln("Recently played")
		t = r.newTable("Played", "Title", "Artist", "From", "Finished")
		for _, p := range report.Recent {
			finished := ""
			if p.Completed {
				finished = "✓"
			}
			t.AppendRow(table.Row{p.PlayedAt.Local().Format(time.DateTime), p.Title, p.Artist.String(), p.Source, finished})
		}
		t.Render()
	}

	if s := report.LastScan; s != nil {
		r.writePlainln("Last scan: %s (%s), %d songs, %d skipped",
			s.StartedAt.Local().Format(time.DateTime), s.Reason, s.Songs, s.Skipped)
	}
	return nil
}

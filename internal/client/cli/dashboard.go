package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reports lists ASHA field reports.
func (a *App) Reports(ctx context.Context) error {
	reports, err := a.dashboardService.AshaReports(ctx)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintln(a.out, "No reports")
		return nil
	}
	for _, r := range reports {
		symptoms := r.Symptoms.ReportedSymptoms()
		sort.Strings(symptoms)
		fmt.Fprintf(a.out, "#%d\t%s\t%s\t%s\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02"), r.VillageName, r.Username, strings.Join(symptoms, ","))
	}
	return nil
}

// Alerts lists district alerts.
func (a *App) Alerts(ctx context.Context) error {
	alerts, err := a.dashboardService.Alerts(ctx)
	if err != nil {
		return err
	}
	for _, al := range alerts {
		fmt.Fprintf(a.out, "#%d\t%s\t%s\t%s\n", al.ID, al.DistrictName, al.AlertType, al.Title)
	}
	return nil
}

// Risks lists district risk scores.
func (a *App) Risks(ctx context.Context) error {
	scores, err := a.dashboardService.RiskScores(ctx)
	if err != nil {
		return err
	}
	for _, s := range scores {
		fmt.Fprintf(a.out, "%s\t%.2f\t%s\n", s.DistrictName, s.ScoreValue, s.Classification)
	}
	return nil
}

// Stats prints the state dashboard statistics, or those of one district
// when districtID is given.
func (a *App) Stats(ctx context.Context, districtID string) error {
	var (
		stats map[string]any
		err   error
	)
	if districtID == "" {
		stats, err = a.dashboardService.StateStats(ctx)
	} else {
		id, convErr := strconv.Atoi(districtID)
		if convErr != nil {
			return fmt.Errorf("invalid district id %q", districtID)
		}
		stats, err = a.dashboardService.DistrictStats(ctx, id)
	}
	if err != nil {
		return err
	}
	return a.printJSON(stats)
}

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

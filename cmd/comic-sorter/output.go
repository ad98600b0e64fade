package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vrsandeep/comic-sorter/internal/models"
)

func printSummary(cmd *cobra.Command, summary *models.BatchSummary) {
	out := cmd.OutOrStdout()
	if summary == nil {
		return
	}
	if len(summary.Results) == 0 {
		fmt.Fprintln(out, "Nothing to move.")
		return
	}

	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		detail := relativeTo(summary.Root, r.Destination)
		if r.Error != "" {
			detail = r.Error
		}
		rows = append(rows, []string{filepath.Base(r.Source), string(r.Status), detail})
	}
	fmt.Fprintln(out, renderTable(out, []string{"File", "Status", "Destination"}, rows, nil))

	counts := summary.Counts()
	line := fmt.Sprintf("%d moved, %d renamed, %d unchanged, %d failed",
		counts[models.MoveStatusMoved], counts[models.MoveStatusRenamed], counts[models.MoveStatusUnchanged], counts[models.MoveStatusFailed])
	if summary.DryRun {
		line = fmt.Sprintf("Dry run: %d planned, %d unchanged, %d failed",
			counts[models.MoveStatusPlanned], counts[models.MoveStatusUnchanged], counts[models.MoveStatusFailed])
	}
	if summary.RunID != "" {
		line += " (run " + summary.RunID + ")"
	}
	fmt.Fprintln(out, line)
}

func printRecords(cmd *cobra.Command, records []*models.ComicMetadata) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.OriginalFilename,
			rec.Series,
			rec.Publisher,
			formatIssue(rec.IssueNumber),
			formatYear(rec.Year),
			rec.SuggestedFolder,
			string(rec.Source),
			string(rec.Confidence),
		})
	}
	headers := []string{"File", "Series", "Publisher", "Issue", "Year", "Folder", "Source", "Confidence"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight}
	fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
}

func printGroups(cmd *cobra.Command, groups []models.SeriesGroup) {
	out := cmd.OutOrStdout()
	if len(groups) == 0 {
		fmt.Fprintln(out, "No series groups found.")
		return
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		names := make([]string, len(g.Files))
		for i, f := range g.Files {
			names[i] = filepath.Base(f)
		}
		rows = append(rows, []string{g.Name, strconv.Itoa(g.FileCount()), strings.Join(names, "\n")})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Series", "Files", "Members"}, rows, []columnAlignment{alignLeft, alignRight}))
}

func formatIssue(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

func formatYear(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

func relativeTo(root, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

// package formatter provides functions to export course and ranking data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/roundsapp/rounds/internal/models"
)

// CourseToCSV converts a course to CSV format with columns: Hole, Par, Yardage, Stroke Index
func CourseToCSV(course *models.Course) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Hole", "Par", "Yardage", "Stroke Index"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, hole := range course.Holes() {
		record := []string{
			strconv.Itoa(hole.Number),
			strconv.Itoa(hole.Par),
			strconv.Itoa(hole.Yardage),
			strconv.Itoa(hole.StrokeIndex),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// CourseToMarkdown converts a course to a Markdown scorecard table.
func CourseToMarkdown(course *models.Course) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", course.Name()))

	if course.City() != "" {
		location := course.City()
		if course.State() != "" {
			location = fmt.Sprintf("%s, %s", course.City(), course.State())
		}
		buf.WriteString(fmt.Sprintf("**Location**: %s\n\n", location))
	}

	buf.WriteString(fmt.Sprintf("**Holes**: %d\n", course.HoleCount()))
	buf.WriteString(fmt.Sprintf("**Par**: %d\n\n", course.TotalPar()))

	buf.WriteString("| Hole | Par | Yardage |\n")
	buf.WriteString("|-----:|----:|--------:|\n")
	for _, hole := range course.Holes() {
		yardage := ""
		if hole.Yardage > 0 {
			yardage = strconv.Itoa(hole.Yardage)
		}
		buf.WriteString(fmt.Sprintf("| %d | %d | %s |\n", hole.Number, hole.Par, yardage))
	}

	return buf.Bytes(), nil
}

// LeaderboardToCSV converts leaderboard entries to CSV format with columns: Rank, Name, Username, Elo, Handicap
func LeaderboardToCSV(entries []models.LeaderboardEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Name", "Username", "Elo", "Handicap"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.Itoa(entry.Rank),
			entry.FullName,
			entry.Username,
			strconv.Itoa(entry.Elo),
			strconv.FormatFloat(entry.Handicap, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// LeaderboardToMarkdown converts leaderboard entries to a Markdown table.
func LeaderboardToMarkdown(entries []models.LeaderboardEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Rankings\n\n")
	buf.WriteString("| Rank | Golfer | Elo | Handicap |\n")
	buf.WriteString("|-----:|--------|----:|---------:|\n")
	for _, entry := range entries {
		buf.WriteString(fmt.Sprintf("| %d | %s (@%s) | %d | %.1f |\n",
			entry.Rank, entry.FullName, entry.Username, entry.Elo, entry.Handicap))
	}

	return buf.Bytes(), nil
}

// LeaderboardToText converts leaderboard entries to plain text.
func LeaderboardToText(entries []models.LeaderboardEntry) ([]byte, error) {
	var buf bytes.Buffer

	for _, entry := range entries {
		buf.WriteString(fmt.Sprintf("%3d. %s (@%s)  elo %d  hcp %.1f\n",
			entry.Rank, entry.FullName, entry.Username, entry.Elo, entry.Handicap))
	}

	return buf.Bytes(), nil
}

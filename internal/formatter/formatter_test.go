package formatter

import (
	"strings"
	"testing"

	"github.com/roundsapp/rounds/internal/models"
)

func exportCourse() *models.Course {
	holes := make([]models.Hole, 9)
	for i := range holes {
		holes[i] = models.Hole{Number: i + 1, Par: 4, Yardage: 340 + i*10, StrokeIndex: i + 1}
	}
	course := models.NewCourse(0, "Pebble Creek", holes)
	course.SetLocation("Austin", "TX")
	return course
}

func exportEntries() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{Rank: 1, UserID: "u1", FullName: "Jordan Banks", Username: "jbanks", Elo: 1450, Handicap: 8.4},
		{Rank: 2, UserID: "u2", FullName: "Sam Reyes", Username: "sreyes", Elo: 1390, Handicap: 12.0},
	}
}

func TestExporters(t *testing.T) {
	t.Run("CourseToCSV", func(t *testing.T) {
		data, err := CourseToCSV(exportCourse())
		if err != nil {
			t.Fatalf("CourseToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Hole,Par,Yardage,Stroke Index") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,4,340,1") {
			t.Errorf("CSV missing first hole row, got: %s", output)
		}
		if got := strings.Count(strings.TrimSpace(output), "\n"); got != 9 {
			t.Errorf("expected 9 data rows after the header, got %d newlines", got)
		}
	})

	t.Run("CourseToMarkdown", func(t *testing.T) {
		data, err := CourseToMarkdown(exportCourse())
		if err != nil {
			t.Fatalf("CourseToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Pebble Creek") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "Austin, TX") {
			t.Errorf("Markdown missing location")
		}
		if !strings.Contains(output, "**Par**: 36") {
			t.Errorf("Markdown missing total par")
		}
		if !strings.Contains(output, "| 1 | 4 | 340 |") {
			t.Errorf("Markdown missing first hole row, got: %s", output)
		}
	})

	t.Run("LeaderboardToCSV", func(t *testing.T) {
		data, err := LeaderboardToCSV(exportEntries())
		if err != nil {
			t.Fatalf("LeaderboardToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Rank,Name,Username,Elo,Handicap") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Jordan Banks,jbanks,1450,8.4") {
			t.Errorf("CSV missing first entry, got: %s", output)
		}
	})

	t.Run("LeaderboardToMarkdown", func(t *testing.T) {
		data, err := LeaderboardToMarkdown(exportEntries())
		if err != nil {
			t.Fatalf("LeaderboardToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Rankings") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "| 2 | Sam Reyes (@sreyes) | 1390 | 12.0 |") {
			t.Errorf("Markdown missing second entry, got: %s", output)
		}
	})

	t.Run("LeaderboardToText", func(t *testing.T) {
		data, err := LeaderboardToText(exportEntries())
		if err != nil {
			t.Fatalf("LeaderboardToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Jordan Banks (@jbanks)") {
			t.Errorf("text missing first entry, got: %s", output)
		}
		if !strings.Contains(output, "elo 1390") {
			t.Errorf("text missing second entry elo, got: %s", output)
		}
	})
}

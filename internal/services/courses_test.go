package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
)

func testLayout() []models.Hole {
	holes := make([]models.Hole, 9)
	for i := range holes {
		holes[i] = models.Hole{Number: i + 1, Par: 4, Yardage: 360, StrokeIndex: i + 1}
	}
	return holes
}

func TestCourseClient(t *testing.T) {
	t.Run("Courses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/courses" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"courses": []map[string]any{
					{"id": "c1", "name": "Pebble Creek", "city": "Austin", "state": "TX", "hole_count": 18, "total_par": 72},
				},
			})
		}))
		defer server.Close()

		client := NewCourseClient(server.URL, nil, nil)

		courses, err := client.Courses(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(courses) != 1 {
			t.Fatalf("expected 1 course, got %d", len(courses))
		}
		if courses[0].Name != "Pebble Creek" {
			t.Errorf("expected Pebble Creek, got %s", courses[0].Name)
		}
	})

	t.Run("Course", func(t *testing.T) {
		t.Run("Missing ID", func(t *testing.T) {
			client := NewCourseClient("http://localhost", nil, nil)

			_, err := client.Course(context.Background(), "")
			if err == nil {
				t.Fatal("expected error for empty course ID")
			}
			if shared.IsRetryable(err) {
				t.Error("expected missing ID to be terminal")
			}
		})

		t.Run("Rebuilds The Course Model", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/courses/c1" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(courseWire{
					ID: "c1", Name: "Pebble Creek", City: "Austin", State: "TX",
					Holes: testLayout(),
				})
			}))
			defer server.Close()

			client := NewCourseClient(server.URL, nil, nil)

			course, err := client.Course(context.Background(), "c1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if course.RemoteID() != "c1" {
				t.Errorf("expected remote ID c1, got %s", course.RemoteID())
			}
			if course.City() != "Austin" || course.State() != "TX" {
				t.Errorf("expected Austin, TX, got %s, %s", course.City(), course.State())
			}
			if course.HoleCount() != 9 {
				t.Errorf("expected 9 holes, got %d", course.HoleCount())
			}
			if course.TotalPar() != 36 {
				t.Errorf("expected total par 36, got %d", course.TotalPar())
			}
		})
	})

	t.Run("CreateCourse", func(t *testing.T) {
		t.Run("Validates Before Upload", func(t *testing.T) {
			called := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			defer server.Close()

			client := NewCourseClient(server.URL, nil, nil)

			partial := models.NewCourse(0, "Half A Course", testLayout()[:4])
			_, err := client.CreateCourse(context.Background(), partial)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if shared.IsRetryable(err) {
				t.Error("expected validation failure to be terminal")
			}
			if called {
				t.Error("expected no upload for an invalid course")
			}
		})

		t.Run("Uploads And Returns Remote ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/courses" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				var wire courseWire
				json.NewDecoder(r.Body).Decode(&wire)
				if wire.Name != "Pebble Creek" {
					t.Errorf("expected course name in body, got %s", wire.Name)
				}
				if len(wire.Holes) != 9 {
					t.Errorf("expected 9 holes in body, got %d", len(wire.Holes))
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"id": "c-new"})
			}))
			defer server.Close()

			client := NewCourseClient(server.URL, nil, nil)

			course := models.NewCourse(0, "Pebble Creek", testLayout())
			course.SetLocation("Austin", "TX")

			remoteID, err := client.CreateCourse(context.Background(), course)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if remoteID != "c-new" {
				t.Errorf("expected remote ID c-new, got %s", remoteID)
			}
		})
	})

	t.Run("RecentMatches", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "10" {
				t.Errorf("expected default limit 10, got %s", got)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"matches": []map[string]any{
					{"id": "m1", "course_name": "Pebble Creek", "opponent_name": "Sam Reyes", "my_score": 82, "their_score": 85, "elo_delta": 12},
				},
			})
		}))
		defer server.Close()

		client := NewCourseClient(server.URL, nil, nil)

		matches, err := client.RecentMatches(context.Background(), 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if !matches[0].Won() {
			t.Error("expected 82 to beat 85")
		}
	})

	t.Run("Leaderboard", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "25" {
				t.Errorf("expected limit 25, got %s", got)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"entries": []map[string]any{
					{"rank": 1, "user_id": "u1", "full_name": "Jordan Banks", "username": "jbanks", "elo": 1450, "handicap": 8.4},
				},
			})
		}))
		defer server.Close()

		client := NewCourseClient(server.URL, nil, nil)

		entries, err := client.Leaderboard(context.Background(), 25)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 1 || entries[0].Rank != 1 {
			t.Fatalf("expected a single top-ranked entry, got %v", entries)
		}
	})

	t.Run("Tournaments", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"tournaments": []map[string]any{
					{"id": "t1", "name": "City Open", "course_name": "Pebble Creek", "entrants": 14, "max_entries": 32},
				},
			})
		}))
		defer server.Close()

		client := NewCourseClient(server.URL, nil, nil)

		tournaments, err := client.Tournaments(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tournaments) != 1 || tournaments[0].Name != "City Open" {
			t.Fatalf("expected City Open, got %v", tournaments)
		}
	})
}

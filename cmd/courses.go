package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/formatter"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/repositories"
	"github.com/roundsapp/rounds/internal/services"
	"github.com/roundsapp/rounds/internal/shared"
	"github.com/roundsapp/rounds/internal/tasks"
	"github.com/roundsapp/rounds/internal/ui"
	"github.com/urfave/cli/v3"
)

// CoursesList prints all courses visible to the user.
func (r *Runner) CoursesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	courses, err := r.courses.Courses(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(courses, cmd.Bool("pretty"))
	}

	if len(courses) == 0 {
		return r.writePlain("No courses yet\n")
	}
	for _, course := range courses {
		location := course.City
		if course.State != "" {
			location = fmt.Sprintf("%s, %s", course.City, course.State)
		}
		r.writePlain("%s  %s  %d holes, par %d  (id %s)\n",
			course.Name, location, course.HoleCount, course.TotalPar, course.ID)
	}
	return nil
}

// CoursesShow prints one course with its hole layout.
func (r *Runner) CoursesShow(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.StringArg("id")
	if courseID == "" {
		return fmt.Errorf("%w: course ID is required", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	course, err := r.courses.Course(ctx, courseID)
	if err != nil {
		return err
	}

	if format := cmd.String("export"); format != "" {
		return r.exportCourse(course, format, cmd.String("output"))
	}

	r.writePlain("%s", course.Name())
	if course.City() != "" {
		r.writePlain("  %s, %s", course.City(), course.State())
	}
	r.writePlain("\n%d holes, par %d\n\n", course.HoleCount(), course.TotalPar())

	for _, hole := range course.Holes() {
		r.writePlain("  %2d  par %d", hole.Number, hole.Par)
		if hole.Yardage > 0 {
			r.writePlain("  %d yds", hole.Yardage)
		}
		r.writePlain("\n")
	}
	return nil
}

// exportCourse renders the course scorecard in the requested format.
func (r *Runner) exportCourse(course *models.Course, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = formatter.CourseToCSV(course)
	case "markdown", "md":
		data, err = formatter.CourseToMarkdown(course)
	default:
		return fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if path == "" {
		_, err = r.output.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return r.writePlain("Wrote %s\n", path)
}

// CoursesImport runs the scorecard import pipeline over one or more images.
//
// With --interactive the progress renders in a TUI with a retry affordance;
// otherwise progress streams as log lines.
func (r *Runner) CoursesImport(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	paths := cmd.StringSlice("image")
	if name == "" {
		return fmt.Errorf("%w: course name is required", shared.ErrMissingArgument)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one scorecard image is required", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	cache := repositories.NewCourseCacheAdapter(repositories.NewCourseRepository(db))
	engine := tasks.NewScorecardEngine(r.recognizer, r.courses, cache)

	opts := tasks.ImportRunOpts{
		CourseName: name,
		City:       cmd.String("city"),
		State:      cmd.String("state"),
		Paths:      paths,
		HoleCount:  int(cmd.Int("holes")),
		RateLimit:  r.config.OCR.RateLimit,
	}

	if cmd.Bool("interactive") {
		model := ui.NewImportModel(ctx, engine, opts)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("error running import view: %w", err)
		}
		return nil
	}

	session := tasks.NewImportSession()
	session.Start()

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			session.Observe(update.Step, update.Total)
			r.logger.Info(update.Phase.String(),
				"step", session.Processed(), "total", session.Total(), "detail", update.Message)
		}
	}()

	result, err := engine.Run(ctx, opts, progress)
	close(progress)
	<-done

	if err != nil {
		session.Fail(err.Error(), shared.IsRetryable(err))
		if session.ShouldShowRetry() {
			r.writePlain("Import failed: %v\nRe-run the command to retry.\n", err)
		}
		return err
	}
	session.Succeed()

	r.writePlain("Imported %s: %d holes, par %d (id %s)\n",
		result.Course.Name(), result.HoleCount, result.Course.TotalPar(), result.Course.RemoteID())
	if len(result.LowConfidence) > 0 {
		r.writePlain("Check holes %v, the scan was unsure\n", result.LowConfidence)
	}
	return nil
}

// CoursesCached lists locally cached courses, available offline.
func (r *Runner) CoursesCached(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if name := cmd.String("name"); name != "" {
		criteria["name"] = name
	}

	courses, err := repositories.NewCourseRepository(db).List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		summaries := make([]services.CourseSummary, 0, len(courses))
		for _, course := range courses {
			summaries = append(summaries, services.CourseSummary{
				ID:        course.RemoteID(),
				Name:      course.Name(),
				City:      course.City(),
				State:     course.State(),
				HoleCount: course.HoleCount(),
				TotalPar:  course.TotalPar(),
			})
		}
		return r.writeJSON(summaries, cmd.Bool("pretty"))
	}

	if len(courses) == 0 {
		return r.writePlain("No cached courses\n")
	}
	for _, course := range courses {
		r.writePlain("%s  %d holes, par %d\n", course.Name(), course.HoleCount(), course.TotalPar())
	}
	return nil
}

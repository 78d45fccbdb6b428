package services

import (
	"context"
	"fmt"

	"github.com/coursebook/backend/internal/models"
	"go.uber.org/zap"
)

type seedLesson struct {
	title    string
	content  string
	order    int
	duration int
}

type seedCourse struct {
	title       string
	description string
	category    string
	lessons     []seedLesson
}

var demoCatalog = []seedCourse{
	{
		title:       "Introduction to Web Development",
		description: "Learn the basics of HTML, CSS, and JavaScript.",
		category:    "Programming",
		lessons: []seedLesson{
			{title: "HTML Basics", content: "HTML stands for HyperText Markup Language...", order: 1, duration: 10},
			{title: "CSS Styling", content: "CSS allows you to style your HTML pages...", order: 2, duration: 15},
		},
	},
	{
		title:       "Calculus I",
		description: "Fundamentals of limits, derivatives, and integrals.",
		category:    "Mathematics",
		lessons: []seedLesson{
			{title: "Limits", content: "Introduction to the concept of a limit...", order: 1, duration: 45},
		},
	},
}

// Seed fills an empty catalog with demo courses and lessons.
// It does nothing when at least one course already exists.
func (s *catalogService) Seed(ctx context.Context) error {
	existing, err := s.courses.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing courses: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug("catalog already has courses, skipping seed", zap.Int("courses", len(existing)))
		return nil
	}

	for _, sc := range demoCatalog {
		description, category := sc.description, sc.category
		course, err := s.CreateCourse(ctx, &models.CreateCourseRequest{
			Title:       sc.title,
			Description: &description,
			Category:    &category,
		})
		if err != nil {
			return fmt.Errorf("failed to seed course %q: %w", sc.title, err)
		}

		for _, sl := range sc.lessons {
			order, duration := sl.order, sl.duration
			_, err := s.CreateLesson(ctx, course.ID, &models.CreateLessonRequest{
				Title:    sl.title,
				Content:  sl.content,
				Order:    &order,
				Duration: &duration,
			})
			if err != nil {
				return fmt.Errorf("failed to seed lesson %q: %w", sl.title, err)
			}
		}
	}

	s.logger.Info("catalog seeded", zap.Int("courses", len(demoCatalog)))
	return nil
}

package client

import (
	"context"
	"net/http"

	"github.com/coursebook/backend/internal/contract"
	"github.com/coursebook/backend/internal/models"
)

// Lessons returns the lessons of a course ordered by their order field
func (c *Client) Lessons(ctx context.Context, courseID int) ([]models.Lesson, error) {
	route := contract.API.Lessons.List
	lessons, err := query(c, ctx, keyOf(route, courseID), func(ctx context.Context) ([]models.Lesson, error) {
		const action = "fetch lessons"
		resp, err := c.call(ctx, action, route, map[string]any{"courseId": courseID}, nil)
		if err != nil {
			return nil, err
		}
		if resp.status != http.StatusOK {
			return nil, failure(action, resp)
		}
		return *resp.body.(*[]models.Lesson), nil
	})
	if lessons == nil {
		return nil, err
	}
	out := make([]models.Lesson, len(lessons))
	for i := range lessons {
		out[i] = lessons[i].Clone()
	}
	return out, err
}

// Lesson returns the lesson with the given ID, nil when it does not exist
func (c *Client) Lesson(ctx context.Context, id int) (*models.Lesson, error) {
	route := contract.API.Lessons.Get
	lesson, err := query(c, ctx, keyOf(route, id), func(ctx context.Context) (*models.Lesson, error) {
		const action = "fetch lesson"
		resp, err := c.call(ctx, action, route, map[string]any{"id": id}, nil)
		if err != nil {
			return nil, err
		}
		switch resp.status {
		case http.StatusOK:
			return resp.body.(*models.Lesson), nil
		case http.StatusNotFound:
			return nil, nil
		default:
			return nil, failure(action, resp)
		}
	})
	if lesson == nil {
		return nil, err
	}
	cp := lesson.Clone()
	return &cp, err
}

// CreateLesson validates and creates a lesson in a course, then drops that course's cached lesson list
func (c *Client) CreateLesson(ctx context.Context, courseID int, req *models.CreateLessonRequest) (*models.Lesson, error) {
	const action = "create lesson"
	if err := validateInput(action, req); err != nil {
		return nil, err
	}

	route := contract.API.Lessons.Create
	resp, err := c.call(ctx, action, route, map[string]any{"courseId": courseID}, req)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusCreated {
		return nil, failure(action, resp)
	}

	c.invalidate(keyOf(contract.API.Lessons.List, courseID))
	return resp.body.(*models.Lesson), nil
}

// DeleteLesson deletes a lesson of the given course and drops the cached reads it affects
func (c *Client) DeleteLesson(ctx context.Context, id, courseID int) error {
	const action = "delete lesson"
	route := contract.API.Lessons.Delete
	resp, err := c.call(ctx, action, route, map[string]any{"id": id}, nil)
	if err != nil {
		return err
	}
	if resp.status != http.StatusNoContent {
		return failure(action, resp)
	}

	c.invalidate(
		keyOf(contract.API.Lessons.List, courseID),
		keyOf(contract.API.Lessons.Get, id),
	)
	return nil
}

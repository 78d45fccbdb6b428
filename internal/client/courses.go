package client

import (
	"context"
	"net/http"
	"slices"

	"github.com/coursebook/backend/internal/contract"
	"github.com/coursebook/backend/internal/models"
)

// Courses returns every course
func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	route := contract.API.Courses.List
	courses, err := query(c, ctx, keyOf(route), func(ctx context.Context) ([]models.Course, error) {
		const action = "fetch courses"
		resp, err := c.call(ctx, action, route, nil, nil)
		if err != nil {
			return nil, err
		}
		if resp.status != http.StatusOK {
			return nil, failure(action, resp)
		}
		return *resp.body.(*[]models.Course), nil
	})
	return slices.Clone(courses), err
}

// Course returns the course with the given ID, nil when it does not exist
func (c *Client) Course(ctx context.Context, id int) (*models.Course, error) {
	route := contract.API.Courses.Get
	course, err := query(c, ctx, keyOf(route, id), func(ctx context.Context) (*models.Course, error) {
		const action = "fetch course"
		resp, err := c.call(ctx, action, route, map[string]any{"id": id}, nil)
		if err != nil {
			return nil, err
		}
		switch resp.status {
		case http.StatusOK:
			return resp.body.(*models.Course), nil
		case http.StatusNotFound:
			return nil, nil
		default:
			return nil, failure(action, resp)
		}
	})
	if course == nil {
		return nil, err
	}
	cp := *course
	return &cp, err
}

// CreateCourse validates and creates a course, then drops the cached course list
func (c *Client) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	const action = "create course"
	if err := validateInput(action, req); err != nil {
		return nil, err
	}

	route := contract.API.Courses.Create
	resp, err := c.call(ctx, action, route, nil, req)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusCreated {
		return nil, failure(action, resp)
	}

	c.invalidate(keyOf(contract.API.Courses.List))
	return resp.body.(*models.Course), nil
}

// DeleteCourse deletes a course and drops every cached read it affects
func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	const action = "delete course"
	route := contract.API.Courses.Delete
	resp, err := c.call(ctx, action, route, map[string]any{"id": id}, nil)
	if err != nil {
		return err
	}
	if resp.status != http.StatusNoContent {
		return failure(action, resp)
	}

	c.invalidate(
		keyOf(contract.API.Courses.List),
		keyOf(contract.API.Courses.Get, id),
		keyOf(contract.API.Lessons.List, id),
		keyOf(contract.API.Lessons.Get),
	)
	return nil
}

package models

import "time"

// LessonType represents the kind of content a lesson carries
type LessonType string

const (
	LessonTypeText  LessonType = "text"
	LessonTypeVideo LessonType = "video"
)

// DefaultLessonDuration is the duration in minutes shown for lessons without one
const DefaultLessonDuration = 10

// Lesson represents a lesson in a course
type Lesson struct {
	ID        int        `json:"id"`
	CourseID  int        `json:"courseId"`
	Title     string     `json:"title"`
	Type      LessonType `json:"type"`
	Content   string     `json:"content"`
	VideoURL  *string    `json:"videoUrl"`
	Order     int        `json:"order"`
	Duration  *int       `json:"duration"`
	CreatedAt time.Time  `json:"createdAt"`
}

// DisplayDuration returns the lesson duration in minutes, falling back to DefaultLessonDuration
func (l *Lesson) DisplayDuration() int {
	if l.Duration == nil || *l.Duration == 0 {
		return DefaultLessonDuration
	}
	return *l.Duration
}

// Clone returns a copy of the lesson that shares no pointers with l
func (l *Lesson) Clone() Lesson {
	cp := *l
	if l.VideoURL != nil {
		videoURL := *l.VideoURL
		cp.VideoURL = &videoURL
	}
	if l.Duration != nil {
		duration := *l.Duration
		cp.Duration = &duration
	}
	return cp
}

// CreateLessonRequest represents a request to create a lesson
//
// The owning course comes from the URL, so a courseId sent in the body is ignored.
// Order and Duration are stored as INT columns and must fit in 32 bits.
type CreateLessonRequest struct {
	Title    string     `json:"title" validate:"required,max=255"`
	Type     LessonType `json:"type,omitempty" validate:"oneof=text video"`
	Content  string     `json:"content,omitempty" validate:"max=4194303"`
	VideoURL *string    `json:"videoUrl,omitempty" validate:"omitempty,max=2048"`
	Order    *int       `json:"order" validate:"required,min=-2147483648,max=2147483647"`
	Duration *int       `json:"duration,omitempty" validate:"omitempty,min=-2147483648,max=2147483647"`
}

// ApplyDefaults fills in the values the lesson gets when the client omits them.
//
// Type defaults to text and an empty video URL is stored as null.
// A video URL on a text lesson is kept as sent.
func (r *CreateLessonRequest) ApplyDefaults() {
	if r.Type == "" {
		r.Type = LessonTypeText
	}
	if r.VideoURL != nil && *r.VideoURL == "" {
		r.VideoURL = nil
	}
}

// ToLesson builds a lesson record for the given course from the request
func (r *CreateLessonRequest) ToLesson(courseID int) *Lesson {
	lesson := &Lesson{
		CourseID: courseID,
		Title:    r.Title,
		Type:     r.Type,
		Content:  r.Content,
		VideoURL: r.VideoURL,
		Duration: r.Duration,
	}
	if r.Order != nil {
		lesson.Order = *r.Order
	}
	return lesson
}

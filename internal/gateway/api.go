// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"context"
	"fmt"

	"github.com/vspaze/console/internal/model"
)

// Collection endpoints wrap their payload in a resource-named field.
// Mutations return {success, <resource>?, message?}.

// ListStudents fetches all enrolled students.
func (c *Client) ListStudents(ctx context.Context) ([]model.Student, error) {
	var out struct {
		Students []model.Student `json:"students"`
	}
	if err := c.Get(ctx, "/admin/students", &out); err != nil {
		return nil, err
	}
	return out.Students, nil
}

// ListPendingStudents fetches registrations awaiting review.
func (c *Client) ListPendingStudents(ctx context.Context) ([]model.PendingStudent, error) {
	var out struct {
		Students []model.PendingStudent `json:"students"`
	}
	if err := c.Get(ctx, "/admin/students/pending", &out); err != nil {
		return nil, err
	}
	return out.Students, nil
}

// StudentApproval is the credential payload attached when approving a
// pending student registration.
type StudentApproval struct {
	Password        string   `json:"password"`
	TotalFee        float64  `json:"totalFee"`
	EnrolledCourses []string `json:"enrolledCourses"`
}

// ApproveStudent transitions a pending registration to an enrolled student.
func (c *Client) ApproveStudent(ctx context.Context, id string, approval StudentApproval) (model.Student, error) {
	var out struct {
		Success bool          `json:"success"`
		Student model.Student `json:"student"`
	}
	if err := c.Put(ctx, "/admin/students/approve/"+id, approval, &out); err != nil {
		return model.Student{}, err
	}
	return out.Student, nil
}

// CreateStudent adds a student directly, bypassing registration.
func (c *Client) CreateStudent(ctx context.Context, s model.Student) (model.Student, error) {
	var out struct {
		Student model.Student `json:"student"`
	}
	if err := c.Post(ctx, "/admin/students", s, &out); err != nil {
		return model.Student{}, err
	}
	return out.Student, nil
}

// UpdateStudent applies edits to an enrolled student.
func (c *Client) UpdateStudent(ctx context.Context, s model.Student) (model.Student, error) {
	var out struct {
		Student model.Student `json:"student"`
	}
	if err := c.Put(ctx, "/admin/students/"+s.ID, s, &out); err != nil {
		return model.Student{}, err
	}
	return out.Student, nil
}

// UpdateStudentCourses replaces a student's course enrolment set. The
// backend accepts partial updates, so only the course list is sent.
func (c *Client) UpdateStudentCourses(ctx context.Context, id string, courseIDs []string) error {
	payload := struct {
		EnrolledCourses []string `json:"enrolledCourses"`
	}{courseIDs}
	if payload.EnrolledCourses == nil {
		payload.EnrolledCourses = []string{}
	}
	return c.Put(ctx, "/admin/students/"+id, payload, nil)
}

// DeleteStudent removes a student, or rejects a pending registration.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.Delete(ctx, "/admin/students/"+id, nil)
}

// ListFaculty fetches all teaching staff.
func (c *Client) ListFaculty(ctx context.Context) ([]model.Faculty, error) {
	var out struct {
		Faculty []model.Faculty `json:"faculty"`
	}
	if err := c.Get(ctx, "/admin/faculty", &out); err != nil {
		return nil, err
	}
	return out.Faculty, nil
}

// ListPendingFaculty fetches faculty applications awaiting review.
func (c *Client) ListPendingFaculty(ctx context.Context) ([]model.PendingFaculty, error) {
	var out struct {
		Faculty []model.PendingFaculty `json:"faculty"`
	}
	if err := c.Get(ctx, "/admin/faculty/pending", &out); err != nil {
		return nil, err
	}
	return out.Faculty, nil
}

// FacultyApproval is the credential payload attached when approving a
// pending faculty application.
type FacultyApproval struct {
	Password        string   `json:"password"`
	Salary          float64  `json:"salary"`
	AssignedCourses []string `json:"assignedCourses"`
}

// ApproveFaculty transitions a pending application to active faculty.
func (c *Client) ApproveFaculty(ctx context.Context, id string, approval FacultyApproval) (model.Faculty, error) {
	var out struct {
		Success bool          `json:"success"`
		Faculty model.Faculty `json:"faculty"`
	}
	if err := c.Put(ctx, "/admin/faculty/approve/"+id, approval, &out); err != nil {
		return model.Faculty{}, err
	}
	return out.Faculty, nil
}

// DeleteFaculty removes a faculty member, or rejects a pending application.
func (c *Client) DeleteFaculty(ctx context.Context, id string) error {
	return c.Delete(ctx, "/admin/faculty/"+id, nil)
}

// ListCourses fetches all course offerings.
func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var out struct {
		Courses []model.Course `json:"courses"`
	}
	if err := c.Get(ctx, "/courses", &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// CreateCourse adds a course offering.
func (c *Client) CreateCourse(ctx context.Context, course model.Course) (model.Course, error) {
	var out struct {
		Course model.Course `json:"course"`
	}
	if err := c.Post(ctx, "/courses", course, &out); err != nil {
		return model.Course{}, err
	}
	return out.Course, nil
}

// UpdateCourse applies edits to a course offering.
func (c *Client) UpdateCourse(ctx context.Context, course model.Course) (model.Course, error) {
	var out struct {
		Course model.Course `json:"course"`
	}
	if err := c.Put(ctx, "/courses/"+course.ID, course, &out); err != nil {
		return model.Course{}, err
	}
	return out.Course, nil
}

// DeleteCourse removes a course offering.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.Delete(ctx, "/courses/"+id, nil)
}

// ListCourseVideos fetches the lecture recordings of one course.
func (c *Client) ListCourseVideos(ctx context.Context, courseID string) ([]model.Video, error) {
	var out struct {
		Videos []model.Video `json:"videos"`
	}
	if err := c.Get(ctx, "/admin/courses/"+courseID+"/videos", &out); err != nil {
		return nil, err
	}
	return out.Videos, nil
}

// AddCourseVideo attaches a lecture recording to a course module.
func (c *Client) AddCourseVideo(ctx context.Context, courseID string, v model.Video) (model.Video, error) {
	var out struct {
		Video model.Video `json:"video"`
	}
	if err := c.Post(ctx, "/admin/courses/"+courseID+"/videos", v, &out); err != nil {
		return model.Video{}, err
	}
	return out.Video, nil
}

// DeleteCourseVideo removes a lecture recording.
func (c *Client) DeleteCourseVideo(ctx context.Context, courseID, videoID string) error {
	return c.Delete(ctx, fmt.Sprintf("/admin/courses/%s/videos/%s", courseID, videoID), nil)
}

// ListBatches fetches all scheduled batches.
func (c *Client) ListBatches(ctx context.Context) ([]model.Batch, error) {
	var out struct {
		Batches []model.Batch `json:"batches"`
	}
	if err := c.Get(ctx, "/batches", &out); err != nil {
		return nil, err
	}
	return out.Batches, nil
}

// CreateBatch schedules a new batch.
func (c *Client) CreateBatch(ctx context.Context, b model.Batch) (model.Batch, error) {
	var out struct {
		Batch model.Batch `json:"batch"`
	}
	if err := c.Post(ctx, "/batches", b, &out); err != nil {
		return model.Batch{}, err
	}
	return out.Batch, nil
}

// UpdateBatch applies edits to a batch.
func (c *Client) UpdateBatch(ctx context.Context, b model.Batch) (model.Batch, error) {
	var out struct {
		Batch model.Batch `json:"batch"`
	}
	if err := c.Put(ctx, "/batches/"+b.ID, b, &out); err != nil {
		return model.Batch{}, err
	}
	return out.Batch, nil
}

// DeleteBatch removes a batch.
func (c *Client) DeleteBatch(ctx context.Context, id string) error {
	return c.Delete(ctx, "/batches/"+id, nil)
}

// ListPayments fetches all fee payment records.
func (c *Client) ListPayments(ctx context.Context) ([]model.Payment, error) {
	var out struct {
		Payments []model.Payment `json:"payments"`
	}
	if err := c.Get(ctx, "/admin/payments", &out); err != nil {
		return nil, err
	}
	return out.Payments, nil
}

// DashboardStats fetches the aggregate counts for the dashboard landing.
func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var out struct {
		Stats model.DashboardStats `json:"stats"`
	}
	if err := c.Get(ctx, "/admin/dashboard/stats", &out); err != nil {
		return model.DashboardStats{}, err
	}
	return out.Stats, nil
}

// PendingCounts fetches both pending list lengths for the sidebar badges.
// The two reads are independent; a failure of either fails the refresh.
func (c *Client) PendingCounts(ctx context.Context) (model.PendingCounts, error) {
	students, err := c.ListPendingStudents(ctx)
	if err != nil {
		return model.PendingCounts{}, err
	}
	faculty, err := c.ListPendingFaculty(ctx)
	if err != nil {
		return model.PendingCounts{}, err
	}
	return model.PendingCounts{Students: len(students), Faculty: len(faculty)}, nil
}

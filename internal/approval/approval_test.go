// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package approval

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/model"
)

// stubAPI records calls and returns canned results.
type stubAPI struct {
	pendingStudents []model.PendingStudent
	pendingFaculty  []model.PendingFaculty

	approveStudentErr error
	approveFacultyErr error
	deleteErr         error

	approvedStudentID string
	studentApproval   gateway.StudentApproval
	approvedFacultyID string
	facultyApproval   gateway.FacultyApproval
	deletedID         string
}

func (s *stubAPI) ListPendingStudents(context.Context) ([]model.PendingStudent, error) {
	return s.pendingStudents, nil
}

func (s *stubAPI) ListPendingFaculty(context.Context) ([]model.PendingFaculty, error) {
	return s.pendingFaculty, nil
}

func (s *stubAPI) ApproveStudent(_ context.Context, id string, a gateway.StudentApproval) (model.Student, error) {
	if s.approveStudentErr != nil {
		return model.Student{}, s.approveStudentErr
	}
	s.approvedStudentID = id
	s.studentApproval = a
	return model.Student{ID: id, Status: model.StudentStatusActive}, nil
}

func (s *stubAPI) ApproveFaculty(_ context.Context, id string, a gateway.FacultyApproval) (model.Faculty, error) {
	if s.approveFacultyErr != nil {
		return model.Faculty{}, s.approveFacultyErr
	}
	s.approvedFacultyID = id
	s.facultyApproval = a
	return model.Faculty{ID: id}, nil
}

func (s *stubAPI) DeleteStudent(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedID = id
	return nil
}

func (s *stubAPI) DeleteFaculty(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedID = id
	return nil
}

func TestApproveStudentHappyPath(t *testing.T) {
	api := &stubAPI{}
	svc := NewService(api)

	item := model.PendingStudent{ID: "p1", Name: "John Doe", Email: "john@example.com"}
	creds, err := svc.ApproveStudent(context.Background(), item, StudentDraft{
		Password: "secret123",
		TotalFee: DefaultTotalFee,
	})
	require.NoError(t, err)

	// The disclosure pairs the registration email with the chosen plaintext.
	assert.Equal(t, "john@example.com", creds.Email)
	assert.Equal(t, "secret123", creds.Password)

	assert.Equal(t, "p1", api.approvedStudentID)
	assert.Equal(t, float64(DefaultTotalFee), api.studentApproval.TotalFee)
	require.NotNil(t, api.studentApproval.EnrolledCourses)
	assert.Empty(t, api.studentApproval.EnrolledCourses)
}

func TestApproveStudentValidation(t *testing.T) {
	svc := NewService(&stubAPI{})

	tests := []struct {
		name      string
		draft     StudentDraft
		wantField string
	}{
		{"empty password", StudentDraft{Password: "", TotalFee: 50000}, "password"},
		{"short password", StudentDraft{Password: "abc12", TotalFee: 50000}, "password"},
		{"zero fee", StudentDraft{Password: "secret123", TotalFee: 0}, "totalFee"},
		{"negative fee", StudentDraft{Password: "secret123", TotalFee: -1}, "totalFee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApproveStudent(context.Background(), model.PendingStudent{ID: "p1"}, tt.draft)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestApproveStudentBackendFailure(t *testing.T) {
	api := &stubAPI{approveStudentErr: &gateway.Error{Status: http.StatusInternalServerError, Message: "db down"}}
	svc := NewService(api)

	_, err := svc.ApproveStudent(context.Background(), model.PendingStudent{ID: "p1"},
		StudentDraft{Password: "secret123", TotalFee: 50000})
	require.Error(t, err)

	// The backend message travels up for the modal to display.
	var apiErr *gateway.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "db down", apiErr.Message)
	assert.Empty(t, api.approvedStudentID, "pending item must not be marked approved")
}

func TestApproveFacultyHappyPath(t *testing.T) {
	api := &stubAPI{}
	svc := NewService(api)

	item := model.PendingFaculty{ID: "f1", Email: "smith@example.com", Specialization: "Cloud Computing"}
	creds, err := svc.ApproveFaculty(context.Background(), item, FacultyDraft{
		Password: "secret123",
		Salary:   DefaultSalary,
	})
	require.NoError(t, err)

	assert.Equal(t, "smith@example.com", creds.Email)
	assert.Equal(t, "f1", api.approvedFacultyID)
	assert.Equal(t, float64(DefaultSalary), api.facultyApproval.Salary)
	require.NotNil(t, api.facultyApproval.AssignedCourses)
	assert.Empty(t, api.facultyApproval.AssignedCourses)
}

func TestRejectStudent(t *testing.T) {
	api := &stubAPI{}
	svc := NewService(api)

	require.NoError(t, svc.RejectStudent(context.Background(), "p1"))
	assert.Equal(t, "p1", api.deletedID)
}

func TestRejectStaleItemIsNormalFailure(t *testing.T) {
	api := &stubAPI{deleteErr: &gateway.Error{Status: http.StatusNotFound, Message: "Student not found"}}
	svc := NewService(api)

	err := svc.RejectFaculty(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, gateway.IsNotFound(err))
}

func TestLoadPendingReplacesWholesale(t *testing.T) {
	api := &stubAPI{pendingStudents: []model.PendingStudent{{ID: "p1"}, {ID: "p2"}}}
	svc := NewService(api)

	list, err := svc.LoadPendingStudents(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	api.pendingStudents = []model.PendingStudent{{ID: "p3"}}
	list, err = svc.LoadPendingStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p3", list[0].ID)
}

// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

// Package approval implements the pending-registration review workflow for
// the student and faculty variants: load the pending set, validate a
// credential draft, submit the approval and disclose the generated login
// exactly once, or reject after confirmation.
package approval

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/model"
)

// Defaults seeded into a fresh credential-capture form.
const (
	DefaultTotalFee = 50000
	DefaultSalary   = 30000
)

// API is the slice of the platform gateway the workflow needs.
type API interface {
	ListPendingStudents(ctx context.Context) ([]model.PendingStudent, error)
	ListPendingFaculty(ctx context.Context) ([]model.PendingFaculty, error)
	ApproveStudent(ctx context.Context, id string, approval gateway.StudentApproval) (model.Student, error)
	ApproveFaculty(ctx context.Context, id string, approval gateway.FacultyApproval) (model.Faculty, error)
	DeleteStudent(ctx context.Context, id string) error
	DeleteFaculty(ctx context.Context, id string) error
}

// StudentDraft is the credential capture for one student approval attempt.
type StudentDraft struct {
	Password string  `json:"password" validate:"required,min=6"`
	TotalFee float64 `json:"totalFee" validate:"required,gt=0"`
}

// FacultyDraft is the credential capture for one faculty approval attempt.
type FacultyDraft struct {
	Password string  `json:"password" validate:"required,min=6"`
	Salary   float64 `json:"salary" validate:"required,gt=0"`
}

// Credentials is the one-time disclosure shown after a successful approval.
// The plaintext password exists only here; the backend stores a hash.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidationError names the first offending draft field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Service runs the approval workflow against the platform API.
type Service struct {
	api      API
	validate *validator.Validate
}

// NewService returns a workflow service over api.
func NewService(api API) *Service {
	v := validator.New()
	// Report errors under JSON field names, matching the form inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{api: api, validate: v}
}

// LoadPendingStudents replaces the pending-student list wholesale.
func (s *Service) LoadPendingStudents(ctx context.Context) ([]model.PendingStudent, error) {
	return s.api.ListPendingStudents(ctx)
}

// LoadPendingFaculty replaces the pending-faculty list wholesale.
func (s *Service) LoadPendingFaculty(ctx context.Context) ([]model.PendingFaculty, error) {
	return s.api.ListPendingFaculty(ctx)
}

// ValidateStudentDraft checks a draft before submission. Returns a
// *ValidationError naming the first bad field.
func (s *Service) ValidateStudentDraft(draft StudentDraft) error {
	return s.firstError(s.validate.Struct(draft))
}

// ValidateFacultyDraft checks a draft before submission.
func (s *Service) ValidateFacultyDraft(draft FacultyDraft) error {
	return s.firstError(s.validate.Struct(draft))
}

// ApproveStudent validates the draft and submits the approval. On success
// the caller must remove the item from its pending list and show the
// returned credentials once. On failure the pending list and the capture
// modal are left as they were.
func (s *Service) ApproveStudent(ctx context.Context, item model.PendingStudent, draft StudentDraft) (Credentials, error) {
	if err := s.ValidateStudentDraft(draft); err != nil {
		return Credentials{}, err
	}
	_, err := s.api.ApproveStudent(ctx, item.ID, gateway.StudentApproval{
		Password:        draft.Password,
		TotalFee:        draft.TotalFee,
		EnrolledCourses: []string{},
	})
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Email: item.Email, Password: draft.Password}, nil
}

// ApproveFaculty validates the draft and submits the approval.
func (s *Service) ApproveFaculty(ctx context.Context, item model.PendingFaculty, draft FacultyDraft) (Credentials, error) {
	if err := s.ValidateFacultyDraft(draft); err != nil {
		return Credentials{}, err
	}
	_, err := s.api.ApproveFaculty(ctx, item.ID, gateway.FacultyApproval{
		Password:        draft.Password,
		Salary:          draft.Salary,
		AssignedCourses: []string{},
	})
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Email: item.Email, Password: draft.Password}, nil
}

// RejectStudent deletes a pending registration. The handler gates this
// behind an explicit confirmation step. A registration already removed by
// another admin surfaces as a normal not-found failure.
func (s *Service) RejectStudent(ctx context.Context, id string) error {
	return s.api.DeleteStudent(ctx, id)
}

// RejectFaculty deletes a pending application.
func (s *Service) RejectFaculty(ctx context.Context, id string) error {
	return s.api.DeleteFaculty(ctx, id)
}

// firstError converts validator output into a single field/reason pair.
func (s *Service) firstError(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	return &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "is invalid"
	}
}

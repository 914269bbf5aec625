// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models exchanged with the platform API
// and the console's local records such as Admin, Settings and Notification.
package model

import (
	"encoding/json"
	"fmt"
)

// CourseRef is a course reference as returned by the platform API. Depending
// on whether the backend expanded the relation, the JSON value is either a
// bare ID string or a full course object. Callers should go through Name and
// ID rather than touching the fields directly.
type CourseRef struct {
	Ref      string
	Expanded *Course
}

// ID returns the referenced course ID regardless of expansion.
func (r CourseRef) ID() string {
	if r.Expanded != nil {
		return r.Expanded.ID
	}
	return r.Ref
}

// Name returns the course name when expanded and the raw reference otherwise.
func (r CourseRef) Name() string {
	if r.Expanded != nil {
		return r.Expanded.Name
	}
	return r.Ref
}

// IsZero reports whether the reference is empty.
func (r CourseRef) IsZero() bool {
	return r.Ref == "" && r.Expanded == nil
}

// UnmarshalJSON accepts either a string ID or an expanded course object.
func (r *CourseRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = CourseRef{}
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.Ref)
	}
	var c Course
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("course ref: %w", err)
	}
	r.Expanded = &c
	r.Ref = c.ID
	return nil
}

// MarshalJSON writes the bare ID; the console never sends expanded objects.
func (r CourseRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID())
}

// FacultyRef is a faculty reference, either a bare ID string or an expanded
// faculty object. Same shape contract as CourseRef.
type FacultyRef struct {
	Ref      string
	Expanded *Faculty
}

// ID returns the referenced faculty ID regardless of expansion.
func (r FacultyRef) ID() string {
	if r.Expanded != nil {
		return r.Expanded.ID
	}
	return r.Ref
}

// Name returns the faculty name when expanded and the raw reference otherwise.
func (r FacultyRef) Name() string {
	if r.Expanded != nil {
		return r.Expanded.Name
	}
	return r.Ref
}

// IsZero reports whether the reference is empty.
func (r FacultyRef) IsZero() bool {
	return r.Ref == "" && r.Expanded == nil
}

// UnmarshalJSON accepts either a string ID or an expanded faculty object.
func (r *FacultyRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = FacultyRef{}
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.Ref)
	}
	var f Faculty
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("faculty ref: %w", err)
	}
	r.Expanded = &f
	r.Ref = f.ID
	return nil
}

// MarshalJSON writes the bare ID.
func (r FacultyRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID())
}

// StudentRef is a student reference, either a bare ID string or an expanded
// student object.
type StudentRef struct {
	Ref      string
	Expanded *Student
}

// ID returns the referenced student ID regardless of expansion.
func (r StudentRef) ID() string {
	if r.Expanded != nil {
		return r.Expanded.ID
	}
	return r.Ref
}

// Name returns the student name when expanded and the raw reference otherwise.
func (r StudentRef) Name() string {
	if r.Expanded != nil {
		return r.Expanded.Name
	}
	return r.Ref
}

// UnmarshalJSON accepts either a string ID or an expanded student object.
func (r *StudentRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = StudentRef{}
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.Ref)
	}
	var s Student
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("student ref: %w", err)
	}
	r.Expanded = &s
	r.Ref = s.ID
	return nil
}

// MarshalJSON writes the bare ID.
func (r StudentRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID())
}

// BatchRef is a batch reference, either a bare ID string or an expanded
// batch object.
type BatchRef struct {
	Ref      string
	Expanded *Batch
}

// ID returns the referenced batch ID regardless of expansion.
func (r BatchRef) ID() string {
	if r.Expanded != nil {
		return r.Expanded.ID
	}
	return r.Ref
}

// Name returns the batch name when expanded and the raw reference otherwise.
func (r BatchRef) Name() string {
	if r.Expanded != nil {
		return r.Expanded.Name
	}
	return r.Ref
}

// UnmarshalJSON accepts either a string ID or an expanded batch object.
func (r *BatchRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = BatchRef{}
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.Ref)
	}
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("batch ref: %w", err)
	}
	r.Expanded = &b
	r.Ref = b.ID
	return nil
}

// MarshalJSON writes the bare ID.
func (r BatchRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID())
}

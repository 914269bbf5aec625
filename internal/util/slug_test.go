// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Full Stack Development", "full-stack-development"},
		{"Data Science & ML", "data-science-ml"},
		{"  Machine   Learning  ", "machine-learning"},
		{"Café Résumé", "cafe-resume"},
		{"C++ Programming!", "c-programming"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"full-stack", true},
		{"batch-2024", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"UPPER", false},
		{"with space", false},
	}

	for _, tt := range tests {
		if got := IsValidSlug(tt.slug); got != tt.valid {
			t.Errorf("IsValidSlug(%q) = %v; want %v", tt.slug, got, tt.valid)
		}
	}
}

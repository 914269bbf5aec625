// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(renderMarkdown("The institute stays **closed** from Oct 20."))
	if !strings.Contains(out, "<strong>closed</strong>") {
		t.Errorf("output = %q, want bold rendered", out)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(renderMarkdown("Hello <script>alert('x')</script> world"))
	if strings.Contains(out, "<script") {
		t.Errorf("output = %q, script tag survived sanitization", out)
	}
	if !strings.Contains(out, "Hello") {
		t.Errorf("output = %q, text content lost", out)
	}
}

func TestRenderMarkdownStripsEventHandlers(t *testing.T) {
	out := string(renderMarkdown(`<a href="https://example.com" onclick="steal()">link</a>`))
	if strings.Contains(out, "onclick") {
		t.Errorf("output = %q, event handler survived", out)
	}
}

func TestRenderMarkdownAutolink(t *testing.T) {
	out := string(renderMarkdown("See https://example.com/fees for details."))
	if !strings.Contains(out, `href="https://example.com/fees"`) {
		t.Errorf("output = %q, want autolinked URL", out)
	}
}

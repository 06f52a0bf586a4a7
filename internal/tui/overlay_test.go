package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/IMNJL/AI-chef/internal/tui/view"
)

func TestOverlayRenderInactiveReturnsBase(t *testing.T) {
	overlay := NewOverlayModel()
	if overlay.Active() {
		t.Fatal("expected overlay to start inactive")
	}
	base := "alpha\nbeta"
	if got := overlay.Render(base, 10, 2, "content"); got != base {
		t.Fatalf("expected base content unchanged when inactive, got %q", got)
	}
}

func TestOverlayRenderCentersContent(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#0c0c0c"))
	overlay.active = true

	width, height := 30, 11
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := overlay.Render(base, width, height, "NEW MEETING")

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}

	// 11 cells of content plus the margins: 15 x 3, centered.
	boxH := 1 + 2*overlayMarginY
	top := (height - boxH) / 2
	bgSeq := view.BackgroundSeq(lipgloss.Color("#0c0c0c"))
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d: width %d, want %d", i, w, width)
		}
		inBox := i >= top && i < top+boxH
		if strings.Contains(line, bgSeq) != inBox {
			t.Errorf("line %d: backdrop present = %v, want %v", i, !inBox, inBox)
		}
	}

	middle := ansi.Strip(lines[top+overlayMarginY])
	if !strings.Contains(middle, "NEW MEETING") {
		t.Fatalf("content missing from middle line %q", middle)
	}
	if !strings.HasPrefix(middle, "......") || !strings.HasSuffix(middle, "......") {
		t.Errorf("base not kept around the box: %q", middle)
	}
}

func TestOverlayRenderClampsToScreen(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.active = true

	content := strings.Repeat("x", 40) + "\n" + strings.Repeat("y", 40)
	got := overlay.Render("base", 20, 3, content)

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d: width %d, want 20", i, w)
		}
	}
}

func TestNormalizeBase(t *testing.T) {
	got := normalizeBase("ab\nabcdef\nx\ny\nz", 4, 3)
	want := []string{"ab  ", "abcd", "x   "}
	for i := range want {
		if ansi.Strip(got[i]) != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

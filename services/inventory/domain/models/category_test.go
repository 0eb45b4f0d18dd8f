package models

import (
	"strings"
	"testing"
)

func TestNewCategory(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		c, err := NewCategory("  Brakes  ")
		if err != nil {
			t.Fatalf("new category: %v", err)
		}
		if c.Name != "Brakes" {
			t.Errorf("name = %q, want %q", c.Name, "Brakes")
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		if _, err := NewCategory("   "); err == nil {
			t.Error("expected error for blank name")
		}
	})

	t.Run("overlong name rejected", func(t *testing.T) {
		if _, err := NewCategory(strings.Repeat("x", 256)); err == nil {
			t.Error("expected error for name over 255 chars")
		}
	})
}

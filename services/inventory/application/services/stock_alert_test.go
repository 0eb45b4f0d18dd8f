package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/autospares/pkg/config"
	"github.com/ghuser/autospares/pkg/logger"
	"github.com/ghuser/autospares/services/inventory/domain/repositories"
)

// recordingNotifier captures what the alert service would email.
type recordingNotifier struct {
	sent     int
	subject  string
	text     string
	htmlBody string
}

func (n *recordingNotifier) Send(_ context.Context, subject, text, htmlBody string) error {
	n.sent++
	n.subject = subject
	n.text = text
	n.htmlBody = htmlBody
	return nil
}

func alertRow(category, description string, qty int) repositories.LowStockPart {
	return repositories.LowStockPart{
		ID:           uuid.New(),
		PartNo:       "PN-" + description,
		Code:         "C-" + description,
		Description:  description,
		Qty:          qty,
		CategoryName: category,
	}
}

func TestStockAlertService_Check(t *testing.T) {
	ctx := context.Background()
	log := logger.New(&config.Config{LogLevel: "error"})

	t.Run("sends one alert when parts are below threshold", func(t *testing.T) {
		repo := &fakeSweepRepo{rows: []repositories.LowStockPart{
			alertRow("Brakes", "brake pad", 2),
			alertRow("Filters", "oil filter", 0),
		}}
		notifier := &recordingNotifier{}
		svc := NewStockAlertService(NewStockReportService(repo, 3), notifier, log)

		if err := svc.Check(ctx); err != nil {
			t.Fatalf("check: %v", err)
		}
		if notifier.sent != 1 {
			t.Fatalf("sent %d alerts, want 1", notifier.sent)
		}
		if notifier.subject != AlertSubject {
			t.Errorf("subject = %q, want %q", notifier.subject, AlertSubject)
		}
		if !strings.Contains(notifier.text, "brake pad") || !strings.Contains(notifier.text, "oil filter") {
			t.Errorf("text body missing parts:\n%s", notifier.text)
		}
	})

	t.Run("no email when nothing is low", func(t *testing.T) {
		repo := &fakeSweepRepo{rows: []repositories.LowStockPart{
			alertRow("Brakes", "brake pad", 40),
		}}
		notifier := &recordingNotifier{}
		svc := NewStockAlertService(NewStockReportService(repo, 3), notifier, log)

		if err := svc.Check(ctx); err != nil {
			t.Fatalf("check: %v", err)
		}
		if notifier.sent != 0 {
			t.Errorf("sent %d alerts, want 0", notifier.sent)
		}
	})
}

func TestBuildStockAlert(t *testing.T) {
	parts := []repositories.LowStockPart{
		alertRow("Brakes", "front pad", 2),
		alertRow("Brakes", "rear pad", 1),
		alertRow("Filters", "oil filter", 0),
		alertRow("", "mystery bolt", 3),
	}

	text, htmlBody := BuildStockAlert(parts, 3)

	t.Run("groups by category in first-seen order", func(t *testing.T) {
		brakes := strings.Index(htmlBody, "Brakes")
		filters := strings.Index(htmlBody, "Filters")
		uncat := strings.Index(htmlBody, "Uncategorized")
		if brakes == -1 || filters == -1 || uncat == -1 {
			t.Fatalf("missing category headings:\n%s", htmlBody)
		}
		if !(brakes < filters && filters < uncat) {
			t.Errorf("categories out of order: Brakes@%d Filters@%d Uncategorized@%d", brakes, filters, uncat)
		}
	})

	t.Run("text fallback carries qty and threshold", func(t *testing.T) {
		if !strings.Contains(text, "Qty: 2 | Min: 3") {
			t.Errorf("text missing qty/min line:\n%s", text)
		}
	})

	t.Run("html escapes part fields", func(t *testing.T) {
		hostile := []repositories.LowStockPart{
			alertRow("Brakes", `<script>alert("x")</script>`, 1),
		}
		_, out := BuildStockAlert(hostile, 3)
		if strings.Contains(out, "<script>") {
			t.Error("description not escaped in HTML body")
		}
	})
}

package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/ghuser/autospares/pkg/logger"
	"github.com/ghuser/autospares/pkg/mailer"
	"github.com/ghuser/autospares/services/inventory/domain/repositories"
)

// AlertSubject is the subject line of the low-stock alert email.
const AlertSubject = "Low Stock Alert - Auto Spares"

// StockAlertService runs the low-stock sweep and hands the composed report to
// the notification sink. Notifier failures are logged, never surfaced to
// callers; alerting is best-effort by contract.
type StockAlertService struct {
	scanner  *StockReportService
	notifier mailer.Notifier
	log      logger.Logger
}

// NewStockAlertService returns a StockAlertService wired with the given
// scanner and notification sink.
func NewStockAlertService(scanner *StockReportService, notifier mailer.Notifier, log logger.Logger) *StockAlertService {
	return &StockAlertService{scanner: scanner, notifier: notifier, log: log}
}

// Check scans at the configured threshold and sends an alert when any part is
// at or below it. No parts below threshold means no email.
func (s *StockAlertService) Check(ctx context.Context) error {
	report, err := s.scanner.Scan(ctx, s.scanner.DefaultThreshold())
	if err != nil {
		return fmt.Errorf("stock alert check: %w", err)
	}

	parts := report.All()
	if len(parts) == 0 {
		s.log.InfoContext(ctx, "no low stock parts")
		return nil
	}

	s.log.InfoContext(ctx, "low stock alert", "count", len(parts), "threshold", report.Threshold)

	text, htmlBody := BuildStockAlert(parts, report.Threshold)
	if err := s.notifier.Send(ctx, AlertSubject, text, htmlBody); err != nil {
		s.log.ErrorContext(ctx, "stock alert delivery failed", "error", err)
	}
	return nil
}

// BuildStockAlert composes the plain-text fallback and the HTML table body
// for the alert email, grouping parts by category name. Parts arrive ordered
// by category from the sweep; grouping preserves first-seen category order.
func BuildStockAlert(parts []repositories.LowStockPart, threshold int) (text, htmlBody string) {
	grouped := make(map[string][]repositories.LowStockPart)
	var order []string
	for _, part := range parts {
		name := part.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], part)
	}

	var tb, hb strings.Builder
	tb.WriteString("The following spare parts are low in stock:\n\n")
	hb.WriteString("<h2>" + AlertSubject + "</h2>\n")
	hb.WriteString("<p>The following spare parts are below the minimum threshold:</p>\n")

	for _, categoryName := range order {
		fmt.Fprintf(&tb, "Category: %s\n", categoryName)

		fmt.Fprintf(&hb, "<h4>%s</h4>\n", html.EscapeString(categoryName))
		hb.WriteString(`<table border="1" cellspacing="0" cellpadding="8">` + "\n")
		hb.WriteString("<thead><tr><th>Description</th><th>Part No</th><th>Qty</th><th>Min</th><th>Code</th></tr></thead>\n<tbody>\n")

		for _, part := range grouped[categoryName] {
			fmt.Fprintf(&tb, " - %s (%s) | Qty: %d | Min: %d\n",
				part.Description, part.PartNo, part.Qty, threshold)

			fmt.Fprintf(&hb, "<tr><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td></tr>\n",
				html.EscapeString(part.Description), html.EscapeString(part.PartNo),
				part.Qty, threshold, html.EscapeString(part.Code))
		}

		hb.WriteString("</tbody></table><br>\n")
		tb.WriteString("\n")
	}

	return tb.String(), hb.String()
}

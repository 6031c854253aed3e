package notifier

import (
	"fmt"
	"html"
	"strings"

	"TickerDash/internal/model"
)

// FormatStartupSummary formats the KPIs of a freshly built snapshot.
func FormatStartupSummary(snap *model.Snapshot) string {
	var b strings.Builder
	k := snap.KPIs

	b.WriteString(fmt.Sprintf("📊 <b>%s snapshot</b> | %s\n\n", html.EscapeString(snap.Symbol), snap.BuiltAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Revenue CAGR %d-%d: %.2f%%\n", k.CAGRFrom, k.CAGRTo, k.CAGR*100))
	b.WriteString(fmt.Sprintf("Gross margin %d: %.2f%%\n", k.MarginYear, k.GrossMargin*100))
	b.WriteString(fmt.Sprintf("FCF margin %d: %.2f%%\n", k.MarginYear, k.FCFMargin*100))
	b.WriteString(fmt.Sprintf("Fair value: $%.2f", k.FairValue))
	if snap.Quote.CurrentPrice != nil {
		b.WriteString(fmt.Sprintf(" (price $%.2f)", *snap.Quote.CurrentPrice))
	}
	b.WriteString("\n")
	if k.NetCash != nil {
		b.WriteString(fmt.Sprintf("Net cash: %.1f bln\n", *k.NetCash/1e9))
	}
	return b.String()
}

// FormatStaleAlert formats the watchdog findings for a snapshot.
func FormatStaleAlert(snap *model.Snapshot, issues []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚠️ <b>%s snapshot is stale</b>\n\n", html.EscapeString(snap.Symbol)))
	for _, issue := range issues {
		b.WriteString("• " + html.EscapeString(issue) + "\n")
	}
	b.WriteString(fmt.Sprintf("\nsnapshot %s built %s; restart the service to refresh.\n",
		snap.ID, snap.BuiltAt.Format("2006-01-02 15:04")))
	return b.String()
}

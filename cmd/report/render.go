package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/domain"
	"github.com/mmoldabe-dev/subtrack/internal/service"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func renderReport(w io.Writer, stats *service.DashboardStats, trends *service.SpendingTrends) {
	cur := stats.DisplayCurrency
	fmt.Fprintf(w, "%d active subscriptions, %s per month, %s per year\n\n",
		stats.TotalActive, currency.Format(stats.MonthlyTotal, cur), currency.Format(stats.AnnualTotal, cur))

	renderCategories(w, stats)
	renderUpcoming(w, stats.UpcomingBills)
	renderTrends(w, trends)
}

func renderCategories(w io.Writer, stats *service.DashboardStats) {
	cats := make([]domain.Category, 0, len(stats.ByCategory))
	for c := range stats.ByCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		return stats.ByCategory[cats[i]].Total > stats.ByCategory[cats[j]].Total
	})

	t := newTable(w, "By category")
	t.AppendHeader(table.Row{"Category", "Count", "Total"})
	for _, c := range cats {
		ct := stats.ByCategory[c]
		t.AppendRow(table.Row{c, ct.Count, currency.Format(ct.Total, stats.DisplayCurrency)})
	}
	t.AppendFooter(table.Row{text.Bold.Sprint("Monthly"), stats.TotalActive, text.Bold.Sprint(currency.Format(stats.MonthlyTotal, stats.DisplayCurrency))})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
	fmt.Fprintln(w)
}

func renderUpcoming(w io.Writer, bills []domain.Subscription) {
	if len(bills) == 0 {
		fmt.Fprintln(w, "No bills in the next 30 days.")
		fmt.Fprintln(w)
		return
	}

	t := newTable(w, "Upcoming bills")
	t.AppendHeader(table.Row{"Name", "Date", "Amount"})
	for _, sub := range bills {
		t.AppendRow(table.Row{sub.Name, sub.NextBilling.Format("2006-01-02"), currency.Format(sub.Price.InexactFloat64(), sub.Currency)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	t.Render()
	fmt.Fprintln(w)
}

func renderTrends(w io.Writer, trends *service.SpendingTrends) {
	t := newTable(w, fmt.Sprintf("Spending (%s)", trends.Period))
	t.AppendHeader(table.Row{"Period", "Subscriptions", "Total"})
	for _, p := range trends.Trends {
		t.AppendRow(table.Row{p.FullLabel, p.Count, currency.Format(p.Total, trends.DisplayCurrency)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

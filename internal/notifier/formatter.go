package notifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"MusicTycoon/internal/model"
)

// FormatEvent renders one event as a plain log line.
func FormatEvent(evt model.Event) string {
	return fmt.Sprintf("[%8.1fs] %-12s %s", evt.At, evt.Kind, evt.Text)
}

// FormatSnapshot formats the session summary.
func FormatSnapshot(snap *model.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎤 %s | t=%s (frame %d)\n\n", snap.Artist, formatDuration(snap.At), snap.Frame))

	b.WriteString(fmt.Sprintf("Fans:       %s", humanize.Comma(int64(snap.Fans))))
	if snap.Tier != "" {
		b.WriteString(fmt.Sprintf(" (%s)", snap.Tier))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Cash:       $%s\n", humanize.CommafWithDigits(snap.Cash, 2)))
	b.WriteString(fmt.Sprintf("Reputation: %.2f\n", snap.Reputation))
	b.WriteString(fmt.Sprintf("Energy:     %.0f | base quality %.1f\n", snap.Energy, snap.BaseQuality))
	if snap.TrendGenre != "" {
		b.WriteString(fmt.Sprintf("Trending:   %s (x%.2f discovery)\n", snap.TrendGenre, snap.TrendBonus))
	}

	b.WriteString("\n📀 Catalog\n")
	b.WriteString(fmt.Sprintf("  vault %d | singles %d | albums %d | retired %d\n",
		snap.VaultSongs, snap.Singles, snap.Albums, snap.Retired))
	b.WriteString(fmt.Sprintf("  streams today %s | total %s | sales %s\n",
		humanize.Comma(int64(snap.DailyStreams)), humanize.Comma(int64(snap.TotalStreams)), humanize.Comma(int64(snap.TotalSales))))
	b.WriteString(fmt.Sprintf("  lifetime earnings $%s\n", humanize.CommafWithDigits(snap.Earnings, 2)))
	b.WriteString(fmt.Sprintf("  fans won %s (viral %s) | lost %s over %s ticks\n",
		humanize.Comma(int64(snap.FansGained)), humanize.Comma(int64(snap.ViralFans)),
		humanize.Comma(int64(snap.FansLost)), humanize.Comma(int64(snap.Ticks))))

	return b.String()
}

// FormatCatalog lists live releases, best earners first.
func FormatCatalog(releases []model.Release) string {
	if len(releases) == 0 {
		return "No releases on the market.\n"
	}
	sorted := make([]model.Release, len(releases))
	copy(sorted, releases)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Earnings > sorted[j].Earnings })

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-6s %-24s %-10s %5s %6s %10s %8s %10s\n",
		"KIND", "NAME", "GENRE", "Q", "HYPE", "STREAMS", "SALES", "EARNED"))
	for _, r := range sorted {
		name := r.Name
		if r.IsAlbum() {
			name = fmt.Sprintf("%s [%d]", r.Name, len(r.Tracks))
		}
		b.WriteString(fmt.Sprintf("%-6s %-24s %-10s %5.1f %6.3f %10s %8s %10s\n",
			kindLabel(r.Kind), truncate(name, 24), truncate(r.Genre, 10), r.Quality, r.Hype,
			humanize.Comma(int64(r.TotalStreams)), humanize.Comma(int64(r.TotalSales)),
			"$"+humanize.CommafWithDigits(r.Earnings, 2)))
	}
	return b.String()
}

func kindLabel(k model.Kind) string {
	if k == model.KindAlbum {
		return "album"
	}
	return "single"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%dm%02ds", total/60, total%60)
}

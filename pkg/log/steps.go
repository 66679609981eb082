package log

import (
	"fmt"

	"github.com/pterm/pterm"
)

// 📋 Steps prints a numbered list of manual follow-up steps under a title
func (l *Logger) Steps(title string, steps []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pterm.Info.WithPrefix(pterm.Prefix{Text: "📋"}).WithWriter(l.console).Println(title)

	items := make([]pterm.BulletListItem, 0, len(steps))
	for i, step := range steps {
		items = append(items, pterm.BulletListItem{
			Level:  1,
			Text:   step,
			Bullet: fmt.Sprintf("%d.", i+1),
		})
	}
	if err := pterm.DefaultBulletList.WithItems(items).WithWriter(l.console).Render(); err != nil {
		l.zlog.Error().Err(err).Msg("rendering steps")
	}

	l.zlog.Info().Strs("steps", steps).Msg(title)
}

// 🚧 Manual prints a warning block listing work the tool leaves to a human
func (l *Logger) Manual(items []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	printer := pterm.Warning.WithPrefix(pterm.Prefix{Text: "🚧"}).WithWriter(l.console)
	printer.Println("manual review required")
	for _, item := range items {
		printer.Println("  - " + item)
	}

	l.zlog.Warn().Strs("manual", items).Msg("manual review required")
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  ___ _ __   __ _  ___ ___| |_ __ _ ___| | __",
	" / __| '_ \\ / _` |/ __/ _ \\ __/ _` / __| |/ /",
	" \\__ \\ |_) | (_| | (_|  __/ || (_| \\__ \\   < ",
	" |___/ .__/ \\__,_|\\___\\___|\\__\\__,_|___/_|\\_\\",
	"     |_|",
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa"}

// PrintBanner writes the spacetask banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}

package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	messageStyle  = lipgloss.NewStyle().Faint(true)
)

// Spin renders an activity indicator on stdout until done closes, then clears
// the line. It is purely cosmetic: the watched work owns all real output and
// Spin tolerates done closing before the first frame is drawn.
func Spin(message string, done <-chan struct{}) {
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-done:
			fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(message)+2))
			return
		case <-ticker.C:
			frame := spinnerStyle.Render(spinnerFrames[i%len(spinnerFrames)])
			fmt.Fprintf(os.Stdout, "\r%s %s", frame, messageStyle.Render(message))
			i++
		}
	}
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/TimeWing/internal/pomodoro"
)

// tickMsg is the one-second cooperative poll driving the countdown.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(ts time.Time) tea.Msg {
		return tickMsg(ts)
	})
}

// TimerModel renders a Pomodoro session. The state machine stays
// authoritative; the view only forwards elapsed wall-clock time through
// Tick and renders the resulting state.
type TimerModel struct {
	timer    *pomodoro.Timer
	progress progress.Model
	lastTick time.Time
	status   string
	quitting bool

	// BigTaskIDs collects linked tasks flagged eligible for a completion
	// report during this session; the command layer prompts afterwards.
	BigTaskIDs []string
}

// NewTimerModel wraps a state machine for interactive display.
func NewTimerModel(t *pomodoro.Timer) TimerModel {
	return TimerModel{
		timer:    t,
		progress: progress.New(progress.WithDefaultGradient()),
		lastTick: time.Now(),
	}
}

func (m TimerModel) Init() tea.Cmd {
	return tickCmd()
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-12, 50)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "p", " ":
			if m.timer.State().Running {
				m.timer.Pause()
				m.status = "Paused."
			} else if err := m.timer.Resume(); err != nil {
				m.status = err.Error()
			} else {
				m.status = "Resumed."
			}

		case "r":
			m.timer.Reset()
			m.status = "Timer reset."

		case "s":
			m.timer.Stop()
			m.status = "Timer stopped. Press w to start a work interval."

		case "b":
			iv := m.timer.State().Interval
			if iv == pomodoro.IntervalWork {
				iv = pomodoro.IntervalShortBreak
			}
			if err := m.timer.Start(iv, ""); err != nil {
				m.status = err.Error()
			} else {
				m.status = iv.Display() + " started."
			}

		case "w":
			if err := m.timer.Start(pomodoro.IntervalWork, m.timer.State().TaskID); err != nil {
				m.status = err.Error()
			} else {
				m.status = "Work interval started."
			}
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		elapsed := now.Sub(m.lastTick)
		m.lastTick = now

		completion, err := m.timer.Tick(elapsed)
		if err != nil {
			// Append failed; the machine stays retryable on the next tick.
			m.status = err.Error()
			return m, tickCmd()
		}
		if completion != nil {
			m.status = fmt.Sprintf("%s finished. Suggested next: %s (press %s).",
				completion.Interval.Display(), completion.Suggested.Display(), startKey(completion.Suggested))
			if completion.BigTask {
				m.BigTaskIDs = append(m.BigTaskIDs, completion.TaskID)
			}
		}
		return m, tickCmd()
	}
	return m, nil
}

func startKey(iv pomodoro.IntervalType) string {
	if iv == pomodoro.IntervalWork {
		return "w"
	}
	return "b"
}

func (m TimerModel) View() string {
	if m.quitting {
		st := m.timer.State()
		return fmt.Sprintf("Session over. Completed work intervals: %d.\n", st.CompletedIntervals)
	}

	st := m.timer.State()
	total := m.timer.Config().Minutes(st.Interval) * 60
	percent := 0.0
	if total > 0 {
		percent = 1 - float64(st.RemainingSeconds)/float64(total)
	}

	var b strings.Builder
	title := st.Interval.Display()
	if !st.Running {
		title += " (paused)"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(StylePrimary.Render(fmt.Sprintf("%02d:%02d", st.RemainingSeconds/60, st.RemainingSeconds%60)))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	if st.TaskID != "" {
		b.WriteString(StyleSubtle.Render("Task: " + ShortID(st.TaskID)))
		b.WriteString("\n")
	}
	b.WriteString(StyleSubtle.Render(fmt.Sprintf("Completed intervals: %d", st.CompletedIntervals)))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleWarning.Render(m.status))
		b.WriteString("\n")
	}

	box := StyleTimerBox
	if st.Interval != pomodoro.IntervalWork {
		box = StyleBreakBox
	}

	help := StyleSubtle.Render("p pause/resume • r reset • w work • b break • s stop • q quit")
	return box.Render(b.String()) + "\n" + help + "\n"
}

// Package tui is a terminal front end over the controller: commands go
// in on key presses, controller events and snapshots come back out.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"loom/controller"
	"loom/model"
	"loom/tapestry"
	"loom/theme"
)

// tempoStep is the BPM change per +/- key press.
const tempoStep = 5.0

type Model struct {
	Controller *controller.Controller
	Theme      *theme.Theme

	events   <-chan controller.Event
	sub      int
	snap     controller.ProjectSnapshot
	status   string
	quitting bool
}

// EventMsg wraps one controller event for bubbletea.
type EventMsg struct{ Event controller.Event }

func NewModel(c *controller.Controller, th *theme.Theme) Model {
	events, sub := c.Subscribe()
	return Model{
		Controller: c,
		Theme:      th,
		events:     events,
		sub:        sub,
		snap:       c.Snapshot(),
	}
}

// ListenForEvents waits for the next controller event.
func ListenForEvents(events <-chan controller.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: ev}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForEvents(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Controller.Unsubscribe(m.sub)
			m.Controller.Send(controller.Shutdown{})
			return m, tea.Quit

		case "p", " ", "space":
			if m.snap.Playing {
				m.Controller.Send(controller.Stop{})
			} else {
				m.Controller.Send(controller.Play{})
			}

		case "0":
			m.Controller.Send(controller.Seek{Position: tapestry.Zero})

		case "+", "=":
			m.Controller.Send(controller.SetTempo{
				Tempo: tapestry.Tempo{BPM: m.snap.Tempo.BPM + tempoStep},
			})

		case "-", "_":
			m.Controller.Send(controller.SetTempo{
				Tempo: tapestry.Tempo{BPM: m.snap.Tempo.BPM - tempoStep},
			})

		case "t":
			n := 0
			if m.snap.Timeline != nil {
				n = len(m.snap.Timeline.Tracks)
			}
			m.Controller.Send(controller.AddTrack{
				Name: fmt.Sprintf("Track %d", n+1),
				Type: model.TrackMidi,
			})

		case "o":
			m.Controller.Send(controller.ScanOutputs{})
		}

	case EventMsg:
		m.apply(msg.Event)
		return m, ListenForEvents(m.events)
	}

	return m, nil
}

// apply folds one controller event into the view state. Most events just
// invalidate the snapshot.
func (m *Model) apply(ev controller.Event) {
	switch ev := ev.(type) {
	case controller.PlaybackPositionChanged:
		m.snap.Position = ev.Position
	case controller.Error:
		m.status = ev.Message
	case controller.OutputError:
		m.status = ev.Message
	case controller.OutputsScanned:
		names := make([]string, 0, len(ev.Ports))
		for _, p := range ev.Ports {
			names = append(names, p.DeviceID())
		}
		if len(names) == 0 {
			m.status = "no MIDI outputs found"
		} else {
			m.status = "MIDI outputs: " + strings.Join(names, ", ")
		}
	default:
		m.snap = m.Controller.Snapshot()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	laneStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	playState := string(m.Theme.Symbols.Stop) + " STOP"
	if m.snap.Playing {
		playState = string(m.Theme.Symbols.Play) + " PLAY"
	}

	header := headerStyle.Render(fmt.Sprintf("loom  %s  %s  %.0fbpm  %d/%d  bar %d beat %.2f",
		m.snap.Name, playState, m.snap.Tempo.BPM,
		m.snap.Signature.Numerator, m.snap.Signature.Denominator,
		m.snap.Bar+1, m.snap.Beat+1))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	if m.snap.Timeline != nil {
		for _, t := range m.snap.Timeline.Tracks {
			out.WriteString(m.renderTrack(t, laneStyle))
			out.WriteString("\n")
		}
		if len(m.snap.Timeline.Tracks) == 0 {
			out.WriteString(dimStyle.Render("no tracks, press t to add one"))
			out.WriteString("\n")
		}
	}

	if len(m.snap.Endpoints) > 0 {
		out.WriteString("\n")
		for _, ep := range m.snap.Endpoints {
			state := "disconnected"
			if ep.Connected {
				state = "connected"
			}
			out.WriteString(dimStyle.Render(fmt.Sprintf("  out %s [%s] %s", ep.Name, ep.DeviceID, state)))
			out.WriteString("\n")
		}
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render("t:add-track o:scan-outputs space:play/stop 0:rewind +/-:tempo q:quit"))

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(errStyle.Render(m.status))
	}

	return out.String()
}

// renderTrack draws one track lane: name, flags and container markers.
func (m Model) renderTrack(t controller.TrackSnapshot, style lipgloss.Style) string {
	flags := " "
	if t.Muted {
		flags = string(m.Theme.Symbols.Muted)
	}
	if t.Solo {
		flags += string(m.Theme.Symbols.Solo)
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.TrackColor(t.Color.R, t.Color.G, t.Color.B))
	line := fmt.Sprintf("%s %s  ", nameStyle.Render(fmt.Sprintf("%-12s", t.Name)), flags)

	for _, c := range t.Containers {
		line += style.Render(fmt.Sprintf("%s@%d ", string(m.Theme.Symbols.Container), c.Position.Ticks()))
	}
	if len(t.Containers) == 0 {
		line += style.Render(string(m.Theme.Symbols.LaneEmpty))
	}
	return line
}

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"loom/config"
	"loom/controller"
	"loom/debug"
	"loom/model"
	"loom/output"
	"loom/tapestry"
	"loom/theme"
	"loom/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "log to ~/.config/loom/debug.log")
	palettePath := flag.String("palette", "", "path to a .gpl palette file")
	flag.Parse()

	if *debugFlag {
		if err := debug.Enable(); err != nil {
			fmt.Printf("debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	palette := theme.Default()
	if *palettePath != "" {
		p, err := theme.LoadGPL(*palettePath)
		if err != nil {
			fmt.Printf("palette: %v\n", err)
			os.Exit(1)
		}
		palette = p
	}
	th := theme.New(palette)

	out := output.NewSystem()
	c := controller.New("Untitled", out)
	c.Engine().SetBeatPulse(cfg.BeatPulseEnabled())
	go c.Run()

	if cfg.UI.LastTempo > 0 {
		c.Send(controller.SetTempo{Tempo: tapestry.Tempo{BPM: cfg.UI.LastTempo}})
	}

	// Configured default output, connected eagerly.
	if cfg.Output.DeviceID != "" {
		epCfg := model.NewMidiEndpointConfig(cfg.Output.Name, cfg.Output.DeviceID)
		if cfg.Output.Channel != nil {
			epCfg.Parameters = model.MidiParameters{Channel: cfg.Output.Channel}
		}
		c.Send(controller.AddOutput{Config: epCfg})
		c.Send(controller.ConnectOutput{OutputID: epCfg.ID})
	}

	m := tui.NewModel(c, th)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

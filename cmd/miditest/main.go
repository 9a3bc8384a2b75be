// Command miditest is a smoke tool for the output layer: list ports, send
// a test note through an endpoint, watch for device changes.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"loom/model"
	"loom/output"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "note":
		if len(os.Args) < 3 {
			usage()
			return
		}
		sendNote(os.Args[2])
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI output smoke tool")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list               - list MIDI output ports with device ids")
	fmt.Println("  note <device id>   - send a middle C through an endpoint")
	fmt.Println("  poll               - poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	sys := output.NewSystem()
	ports := sys.ScanMidiOutputs()
	if ports == nil {
		fmt.Println("\nTIMEOUT! The MIDI server is hung.")
		return
	}

	for _, p := range ports {
		fmt.Printf("  %s\n", p.DeviceID())
	}
	if len(ports) == 0 {
		fmt.Println("  (none)")
	}
}

// sendNote drives the full endpoint path: config validation, connect,
// note on, note off.
func sendNote(deviceID string) {
	sys := output.NewSystem()
	cfg := model.NewMidiEndpointConfig("miditest", deviceID)

	if err := sys.AddEndpoint(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := sys.Connect(cfg.ID); err != nil {
		fmt.Printf("Error connecting: %v\n", err)
		return
	}
	defer sys.Disconnect(cfg.ID)

	fmt.Printf("Sending middle C to %s\n", deviceID)
	for _, ev := range []output.Event{
		output.NewNoteOn(0, 60, 100),
	} {
		for _, res := range sys.SendEvent(ev.WithTarget(cfg.ID)) {
			if res.Err != nil {
				fmt.Printf("Error: %v\n", res.Err)
				return
			}
		}
	}

	time.Sleep(300 * time.Millisecond)
	for _, res := range sys.SendEvent(output.NewNoteOff(0, 60).WithTarget(cfg.ID)) {
		if res.Err != nil {
			fmt.Printf("Error: %v\n", res.Err)
			return
		}
	}
	fmt.Println("Done!")
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds. Ctrl+C to exit.")

	sys := output.NewSystem()
	last := ""

	for {
		ports := sys.ScanMidiOutputs()

		var names []string
		for _, p := range ports {
			names = append(names, p.DeviceID())
		}
		current := strings.Join(names, ",")

		if current != last {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Outputs: %v\n", names)
			last = current
		}

		time.Sleep(2 * time.Second)
	}
}

// Command zinvaders runs an Intel 8080 ROM: a Space Invaders arcade
// image, or a CP/M .COM diagnostic run headlessly against a minimal
// BDOS shim.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"zinvaders/audio"
	"zinvaders/host"
	"zinvaders/input"
	"zinvaders/video"
)

var (
	trace   bool
	debug   bool
	noSound bool
	scale   int
)

var rootCmd = &cobra.Command{
	Use:   "zinvaders <rom-path>",
	Short: "Intel 8080 emulator: Space Invaders arcade ROM or CP/M .COM diagnostics",
	Long: `zinvaders runs an Intel 8080 ROM image.

A path ending in .com or .COM is treated as a CP/M transient program:
it is loaded at 0x0100 behind a BDOS console/string-output shim and run
headlessly until it halts.

Any other path is treated as a Space Invaders arcade ROM: it is loaded
at address 0, and driven by a 60 Hz frame loop with mid-frame and
end-of-frame interrupts, a window, keyboard input, and sound.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVarP(&trace, "trace", "t", false, "print a register/cycle trace line per instruction (.COM mode only)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "launch the interactive single-step debugger instead of running")
	rootCmd.Flags().BoolVar(&noSound, "no-sound", false, "disable the audio device (arcade mode only)")
	rootCmd.Flags().IntVar(&scale, "scale", 2, "window scale factor (arcade mode only)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zinvaders:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	romPath := args[0]
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	mc := host.New(os.Stdout)

	if strings.HasSuffix(strings.ToUpper(romPath), ".COM") {
		if err := mc.LoadCOM(rom); err != nil {
			return fmt.Errorf("loading .COM: %w", err)
		}
		if debug {
			mc.CPU.Debug(mc.Mem, mc.Ports)
			return nil
		}
		if trace {
			mc.RunCOM(os.Stderr)
		} else {
			mc.RunCOM(nil)
		}
		return nil
	}

	if err := mc.LoadArcadeROM(rom); err != nil {
		return fmt.Errorf("loading arcade ROM: %w", err)
	}
	if debug {
		mc.CPU.Debug(mc.Mem, mc.Ports)
		return nil
	}
	return runArcade(mc)
}

// arcadeGame adapts a host.Machine's frame loop to ebiten's Game
// interface: ebiten drives the 60 Hz tick, and each tick is one full
// RunFrame.
type arcadeGame struct {
	mc       *host.Machine
	keyboard *input.Keyboard
	sound    *audio.System
	screen   *video.Screen
}

func runArcade(mc *host.Machine) error {
	var sound *audio.System
	if !noSound {
		s, err := audio.NewSystem()
		if err != nil {
			fmt.Fprintln(os.Stderr, "zinvaders: audio disabled:", err)
		} else {
			sound = s
		}
	}

	g := &arcadeGame{
		mc:       mc,
		keyboard: input.NewKeyboard(),
		sound:    sound,
		screen:   video.NewScreen(),
	}

	ebiten.SetWindowSize(video.Width*scale, video.Height*scale)
	ebiten.SetWindowTitle("Space Invaders")
	return ebiten.RunGame(g)
}

func (g *arcadeGame) Update() error {
	keys := g.keyboard.Poll()
	var sound host.SoundSink
	if g.sound != nil {
		sound = g.sound
	}
	g.mc.RunFrame(keys, sound, g.screen)
	return nil
}

func (g *arcadeGame) Draw(screen *ebiten.Image) {
	g.screen.Draw(screen)
}

func (g *arcadeGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screen.Layout(outsideWidth, outsideHeight)
}

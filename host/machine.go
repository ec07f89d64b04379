// Package host wires the CPU, memory, and port packages together into
// a runnable machine: the Space Invaders frame loop (with its
// mid-frame/end-of-frame interrupt schedule) and the headless CP/M
// diagnostic harness.
package host

import (
	"fmt"
	"io"

	"zinvaders/cpu"
	"zinvaders/mem"
	"zinvaders/ports"
)

// Frame timing for a 2 MHz 8080 driving a 60 Hz display.
const (
	CPUFrequencyHz  = 2_000_000
	RefreshRateHz   = 60
	FrameCycles     = CPUFrequencyHz / RefreshRateHz // 33333
	HalfFrameCycles = FrameCycles / 2                // 16666
)

const (
	comLoadAddr = 0x0100
	vramStart   = 0x2400
	vramSize    = 0x1C00
)

// InputSource supplies the two 8080 input-port bytes for one frame's
// worth of polled state (button/coin/DIP layout resolved by the
// collaborator, per spec.md §6).
type InputSource interface {
	Port1() byte
	Port2() byte
}

// SoundSink observes the raw port 3/5 trigger bytes once per frame so
// it can detect rising edges and play the corresponding effect.
type SoundSink interface {
	Update(port3, port5 byte)
}

// FrameSink receives the 224x256 arcade video RAM once per frame, in
// its native rotated byte-per-8-vertical-pixels layout, and is
// responsible for converting it into a displayable frame.
type FrameSink interface {
	Present(vram []byte)
}

// Machine aggregates a CPU with its memory and port buses, and knows
// how to run either the Space Invaders frame loop or a headless CP/M
// diagnostic.
type Machine struct {
	CPU   *cpu.CPU
	Mem   *mem.Bus
	Ports *ports.Bus
}

// New returns a Machine with a fresh CPU, memory, and ports, console
// output for BDOS routed to w.
func New(w io.Writer) *Machine {
	c := cpu.New()
	c.Console = w
	return &Machine{
		CPU:   c,
		Mem:   &mem.Bus{},
		Ports: ports.New(),
	}
}

// LoadArcadeROM loads an arcade ROM image starting at address 0.
func (mc *Machine) LoadArcadeROM(rom []byte) error {
	return mc.Mem.LoadROM(rom, 0)
}

// LoadCOM loads a CP/M .COM image at the conventional transient
// program area (0x0100) and installs the BDOS call trampoline: the
// CPU's Step runs the BDOS shim when PC reaches 0x0005 and then
// executes the OUT 1 ; RET written there, which returns to the caller.
// Address 0x0000 gets an OUT opcode (0xD3).
func (mc *Machine) LoadCOM(com []byte) error {
	if err := mc.Mem.LoadROM(com, comLoadAddr); err != nil {
		return err
	}
	mc.Mem.WriteByte(0x0000, 0xD3)
	mc.Mem.WriteByte(0x0005, 0xD3)
	mc.Mem.WriteByte(0x0006, 0x01)
	mc.Mem.WriteByte(0x0007, 0xC9)
	mc.CPU.PC = comLoadAddr
	return nil
}

// RunCOM drives the CPU headlessly until it halts, emitting a trace
// line per instruction to trace (nil disables tracing). This is the
// harness TST8080-style diagnostics run under.
func (mc *Machine) RunCOM(trace io.Writer) {
	for !mc.CPU.Halted {
		if trace != nil {
			fmt.Fprintln(trace, mc.CPU.Trace(mc.Mem))
		}
		mc.CPU.Step(mc.Mem, mc.Ports)
	}
}

// RunFrame executes one 60 Hz video frame's worth of CPU cycles,
// injecting the mid-frame (RST 1) and end-of-frame (RST 2) interrupts
// at the cycle counts real Space Invaders hardware does, polling
// input once at the start of the frame and handing the sound
// collaborator the raw trigger latches and the video collaborator the
// video RAM once at the end. It returns false if the CPU halted
// mid-frame (a diagnostic ROM finished, or a bug halted the machine).
func (mc *Machine) RunFrame(in InputSource, sound SoundSink, video FrameSink) bool {
	if in != nil {
		mc.Ports.SetInputs(in.Port1(), in.Port2())
	}

	var cycles uint32
	interruptedMidFrame := false
	for cycles < FrameCycles {
		cycles += uint32(mc.CPU.Step(mc.Mem, mc.Ports))
		if mc.CPU.Halted {
			return false
		}
		if !interruptedMidFrame && cycles >= HalfFrameCycles {
			mc.CPU.Interrupt(1, mc.Mem)
			interruptedMidFrame = true
		}
	}
	mc.CPU.Interrupt(2, mc.Mem)

	if sound != nil {
		p3, p5 := mc.Ports.Latches()
		sound.Update(p3, p5)
	}
	if video != nil {
		video.Present(mc.videoRAM())
	}
	return true
}

func (mc *Machine) videoRAM() []byte {
	vram := make([]byte, vramSize)
	for i := range vram {
		vram[i] = mc.Mem.ReadByte(vramStart + uint16(i))
	}
	return vram
}

// Package bdos emulates the two CP/M BDOS functions TST8080-style
// diagnostics rely on: console character output and $-terminated
// string output. It is stateless; the CPU core hooks it in when PC
// reaches the conventional BDOS call address 0x0005.
package bdos

import "io"

// CallAddr is the address at which the CPU core calls HandleCall
// before fetching and executing the trampoline instruction that CP/M
// harnesses install there.
const CallAddr = 0x0005

// reader is the minimal memory view HandleCall needs: a single byte
// read at an arbitrary address, so bdos does not import mem and
// create a dependency cycle with the CPU package that imports bdos.
type reader interface {
	ReadByte(addr uint16) byte
}

// HandleCall emulates BDOS function c (CP/M calling convention: C
// holds the function number, DE holds the argument), writing any
// console output to w. Functions other than 2 and 9 are a no-op.
func HandleCall(c byte, de uint16, mem reader, w io.Writer) {
	switch c {
	case 2:
		w.Write([]byte{byte(de)})
	case 9:
		for addr := de; ; addr++ {
			ch := mem.ReadByte(addr)
			if ch == '$' {
				return
			}
			w.Write([]byte{ch})
		}
	}
}

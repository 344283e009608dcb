//go:build tinygo

package board

import "machine"

// InitSerial configures the default serial port (USB CDC or UART0)
func InitSerial() {
	// USB CDC ignores the baud rate
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})
}

// SerialWriter writes console lines to machine.Serial with CRLF endings
func SerialWriter(s string) {
	machine.Serial.Write([]byte(s))
	machine.Serial.Write([]byte("\r\n"))
}

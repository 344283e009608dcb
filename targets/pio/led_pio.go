//go:build rp2040 || rp2350

package pio

// PIO-driven output pin using tinygo-org/pio.
// Each word written to the TX FIFO sets the pin to its lowest bit.

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

var ErrNoStateMachine = errors.New("pio: no free state machine")

// buildOutputProgram creates the LED PIO program using AssemblerV0
func buildOutputProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 1).Encode(), // 1: out pins, 1
		// .wrap
	}
}

const outputPIOOrigin = 0

// LEDOutput drives one pin from a PIO state machine
type LEDOutput struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pin    machine.Pin
	pioNum uint8
	smNum  uint8
}

// NewLEDOutput claims a free state machine and loads the output program
func NewLEDOutput(pin machine.Pin) (*LEDOutput, error) {
	pioNum, smNum, ok := claimStateMachine()
	if !ok {
		return nil, ErrNoStateMachine
	}

	pioHW := rp2pio.PIO0
	if pioNum == 1 {
		pioHW = rp2pio.PIO1
	}
	l := &LEDOutput{
		pio:    pioHW,
		sm:     pioHW.StateMachine(smNum),
		pin:    pin,
		pioNum: pioNum,
		smNum:  smNum,
	}
	if err := l.init(); err != nil {
		releaseStateMachine(pioNum, smNum)
		return nil, err
	}
	return l, nil
}

func (l *LEDOutput) init() error {
	// Claim the state machine first
	l.sm.TryClaim()

	program := buildOutputProgram()
	offset, err := l.pio.AddProgram(program, outputPIOOrigin)
	if err != nil {
		return err
	}

	l.pin.Configure(machine.PinConfig{Mode: l.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(l.pin, 1)
	// Shift right, no autopull, 32-bit threshold
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(1000, 0)

	l.sm.Init(offset, cfg)

	// Pin direction must be set after Init
	l.sm.SetPindirsConsecutive(l.pin, 1, true)
	l.sm.SetPinsConsecutive(l.pin, 1, false)
	l.sm.SetEnabled(true)
	return nil
}

// Set queues the new level; the state machine applies it within a few cycles
func (l *LEDOutput) Set(high bool) error {
	var word uint32
	if high {
		word = 1
	}
	for l.sm.IsTxFIFOFull() {
		// Busy wait, the program drains one word per two instructions
	}
	l.sm.TxPut(word)
	return nil
}

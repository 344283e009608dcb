package pio

// RP2040/RP2350 have 2 PIO blocks (PIO0, PIO1) with 4 state machines each
const (
	numPIO = 2
	numSM  = 4
)

// claimed marks state machines owned by this package
var claimed [numPIO][numSM]bool

// claimStateMachine takes the lowest free state machine, PIO0 first
func claimStateMachine() (pioNum, smNum uint8, ok bool) {
	for p := range claimed {
		for sm := range claimed[p] {
			if !claimed[p][sm] {
				claimed[p][sm] = true
				return uint8(p), uint8(sm), true
			}
		}
	}
	return 0, 0, false
}

// releaseStateMachine hands back a state machine whose setup failed
func releaseStateMachine(pioNum, smNum uint8) {
	if pioNum < numPIO && smNum < numSM {
		claimed[pioNum][smNum] = false
	}
}

package core

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n >= 0 {
		return utoa64(uint64(n))
	}
	// -n overflows for the minimum int, so convert through uint64
	return "-" + utoa64(uint64(-(n+1))+1)
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	return utoa64(uint64(n))
}

// utoa64 builds the decimal string right to left in a fixed buffer
func utoa64(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte // max uint64 is 20 digits
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// FormatUint formats n in base 10 for console messages
func FormatUint(n uint64) string {
	return utoa64(n)
}

// FormatInt formats n in base 10 for console messages
func FormatInt(n int) string {
	return itoa(n)
}

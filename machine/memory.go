package machine

// Memory is the Machine's 64K-word address space. Addresses at or above
// MMIOBase are routed to Devices instead of Words; every other address
// reads and writes the underlying word array directly.
type Memory struct {
	Words   [0x10000]uint16
	Devices Devices
}

// Reset zeros the backing store and clears any armed device state.
func (m *Memory) Reset() {
	clear(m.Words[:])
	m.Devices.Reset()
}

// rawWord reads the underlying storage directly, bypassing MMIO routing.
// Devices.Drain uses this to read back a string's characters even when
// the string happens to live past MMIOBase (an edge case the hardware
// doesn't forbid, but which no real program exercises).
func (m *Memory) rawWord(addr uint16) uint16 {
	return m.Words[addr]
}

// Read loads the word at addr, routing MMIO reads to Devices. cycles is
// the CPU's current cycle counter, which Devices.Read needs to serve
// TIMER.
func (m *Memory) Read(addr uint16, cycles uint64) uint16 {
	if addr >= MMIOBase {
		return m.Devices.Read(addr, cycles)
	}
	return m.Words[addr]
}

// Write stores value at addr, routing MMIO writes to Devices.
func (m *Memory) Write(addr uint16, value uint16) {
	if addr >= MMIOBase {
		m.Devices.Write(addr, value)
		return
	}
	m.Words[addr] = value
}

// Load copies image into memory starting at base, truncating at the end
// of the 64K address space.
func (m *Memory) Load(image []uint16, base uint16) {
	for i, word := range image {
		addr := int(base) + i
		if addr >= len(m.Words) {
			return
		}
		m.Words[addr] = word
	}
}

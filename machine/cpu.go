// Package machine implements the toy16 Machine: its 64K-word memory with
// a memory-mapped I/O window, and the register CPU that fetches, decodes,
// and executes instructions from the toy16 ISA against it.
package machine

import (
	"io"
	"log"

	"github.com/retrocore/toy16/alu"
	"github.com/retrocore/toy16/isa"
)

// ResetSP is the stack pointer's value immediately after Reset: below the
// MMIO window and below any typical code/data layout, giving a
// downward-growing stack ample room.
const ResetSP = 0xF000

// CPU is the toy16 register machine: an 8-word register file (R[7] is
// the stack pointer), a program counter, the four condition flags, and
// the memory it executes against.
type CPU struct {
	Verbose bool // If set, logs every fetched instruction via log.Printf.

	Memory Memory

	R      [8]uint16
	PC     uint16
	Flags  alu.Flags
	Halted bool
	Cycles uint64
}

// NewCPU returns a CPU with its output sink left undirected; callers set
// Memory.Devices.Output before Reset/Run (the core has no opinion on
// where the toy16's console output goes).
func NewCPU() *CPU {
	cpu := &CPU{}
	cpu.Memory.Devices.Output = io.Discard
	return cpu
}

// SP returns the current stack pointer (R[7]).
func (cpu *CPU) SP() uint16 {
	return cpu.R[7]
}

// Reset zeros the registers, PC, flags, and memory, clears the halted
// state, zeros the cycle counter, and sets SP to ResetSP.
func (cpu *CPU) Reset() {
	clear(cpu.R[:])
	cpu.PC = 0
	cpu.Flags = alu.Flags{}
	cpu.Halted = false
	cpu.Cycles = 0
	cpu.Memory.Reset()
	cpu.R[7] = ResetSP
}

// Load copies image into memory starting at base. It does not reset the
// CPU; callers typically Reset then Load.
func (cpu *CPU) Load(image []uint16, base uint16) {
	cpu.Memory.Load(image, base)
}

// fetchWord reads the word at PC, advances PC, and counts one cycle for
// the fetch transaction.
func (cpu *CPU) fetchWord() uint16 {
	word := cpu.Memory.Read(cpu.PC, cpu.Cycles)
	cpu.PC++
	cpu.Cycles++
	return word
}

// readMem reads a word from memory, counting one cycle for the
// transaction.
func (cpu *CPU) readMem(addr uint16) uint16 {
	word := cpu.Memory.Read(addr, cpu.Cycles)
	cpu.Cycles++
	return word
}

// writeMem stores a word to memory, counting one cycle for the
// transaction.
func (cpu *CPU) writeMem(addr uint16, value uint16) {
	cpu.Memory.Write(addr, value)
	cpu.Cycles++
}

// writeReg stores value into R[rd], recomputes Z/N from it, and counts
// one cycle for the register write. Every opcode whose table entry says
// "Z/N from result" goes through this; SP/PC bookkeeping for PUSH, POP,
// CALL, and RET does not, since those don't carry flag semantics.
func (cpu *CPU) writeReg(rd uint8, value uint16) {
	cpu.R[rd] = value
	cpu.Flags.FromResult(value)
	cpu.Cycles++
}

// Step fetches, decodes, and executes a single instruction. It returns
// ErrHalted if the CPU is already halted, or an ErrUnknownOpcode (with
// the CPU left halted and PC rolled back to the faulting instruction) if
// the fetched opcode isn't in the catalog.
func (cpu *CPU) Step() (err error) {
	if cpu.Halted {
		return ErrHalted
	}

	instrPC := cpu.PC
	word := cpu.fetchWord()
	op, rd, rs := isa.Decode(word)

	if cpu.Verbose {
		log.Printf("toy16: pc=%#04x op=%v rd=r%d rs=r%d", instrPC, op, rd, rs)
	}

	if _, known := isa.Catalog[op]; !known {
		cpu.PC = instrPC
		cpu.Halted = true
		return ErrUnknownOpcode{PC: instrPC, Word: word}
	}

	cpu.execute(op, rd, rs)

	cpu.Memory.Devices.Drain(cpu.Memory.rawWord)

	return nil
}

// Run executes instructions until the CPU halts, returning the error (if
// any) that caused the halt. A HALT instruction halts cleanly and Run
// returns nil.
func (cpu *CPU) Run() (err error) {
	for !cpu.Halted {
		if stepErr := cpu.Step(); stepErr != nil {
			err = stepErr
		}
	}
	return
}

// execute dispatches a decoded instruction. Two-word opcodes fetch their
// payload here, via fetchWord, so the "post-fetch PC" CALL pushes is
// always the address of the instruction following the call site.
func (cpu *CPU) execute(op isa.Opcode, rd, rs uint8) {
	switch op {
	case isa.NOP:
		// no effect

	case isa.MOV:
		cpu.writeReg(rd, cpu.R[rs])

	case isa.ADD:
		cpu.writeReg(rd, alu.Add(cpu.R[rd], cpu.R[rs], &cpu.Flags))

	case isa.SUB:
		cpu.writeReg(rd, alu.Sub(cpu.R[rd], cpu.R[rs], &cpu.Flags))

	case isa.AND:
		cpu.writeReg(rd, alu.And(cpu.R[rd], cpu.R[rs], &cpu.Flags))

	case isa.OR:
		cpu.writeReg(rd, alu.Or(cpu.R[rd], cpu.R[rs], &cpu.Flags))

	case isa.XOR:
		cpu.writeReg(rd, alu.Xor(cpu.R[rd], cpu.R[rs], &cpu.Flags))

	case isa.NOT:
		cpu.writeReg(rd, alu.Not(cpu.R[rd], &cpu.Flags))

	case isa.SHL:
		cpu.writeReg(rd, alu.Shl(cpu.R[rd], cpu.R[rs], &cpu.Flags))

	case isa.SHR:
		cpu.writeReg(rd, alu.Shr(cpu.R[rd], cpu.R[rs], &cpu.Flags))

	case isa.CMP:
		alu.Cmp(cpu.R[rd], cpu.R[rs], &cpu.Flags)

	case isa.PUSH:
		cpu.R[7]--
		cpu.writeMem(cpu.R[7], cpu.R[rs])
		cpu.Cycles++ // stack discipline: one extra cycle beyond the store itself

	case isa.POP:
		value := cpu.readMem(cpu.R[7])
		cpu.R[7]++
		cpu.writeReg(rd, value)
		cpu.Cycles++

	case isa.LD_ABS:
		addr := cpu.fetchWord()
		cpu.writeReg(rd, cpu.readMem(addr))

	case isa.ST_ABS:
		addr := cpu.fetchWord()
		cpu.writeMem(addr, cpu.R[rs])
		cpu.Cycles++

	case isa.LDI:
		imm := cpu.fetchWord()
		cpu.writeReg(rd, imm)

	case isa.JMP:
		addr := cpu.fetchWord()
		cpu.PC = addr

	case isa.JZ:
		addr := cpu.fetchWord()
		if cpu.Flags.Z {
			cpu.PC = addr
		}

	case isa.JNZ:
		addr := cpu.fetchWord()
		if !cpu.Flags.Z {
			cpu.PC = addr
		}

	case isa.JC:
		addr := cpu.fetchWord()
		if cpu.Flags.C {
			cpu.PC = addr
		}

	case isa.JN:
		addr := cpu.fetchWord()
		if cpu.Flags.N {
			cpu.PC = addr
		}

	case isa.CALL:
		addr := cpu.fetchWord()
		cpu.R[7]--
		cpu.writeMem(cpu.R[7], cpu.PC)
		cpu.Cycles++
		cpu.PC = addr

	case isa.RET:
		addr := cpu.readMem(cpu.R[7])
		cpu.R[7]++
		cpu.Cycles++
		cpu.PC = addr

	case isa.HALT:
		cpu.Halted = true

	case isa.LD_IND:
		cpu.writeReg(rd, cpu.readMem(cpu.R[rs]))

	case isa.ST_IND:
		cpu.writeMem(cpu.R[rd], cpu.R[rs])
		cpu.Cycles++

	case isa.LEA:
		imm := cpu.fetchWord()
		cpu.writeReg(rd, imm)

	case isa.ADDI:
		imm := cpu.fetchWord()
		cpu.writeReg(rd, alu.Add(cpu.R[rd], imm, &cpu.Flags))

	case isa.SUBI:
		imm := cpu.fetchWord()
		cpu.writeReg(rd, alu.Sub(cpu.R[rd], imm, &cpu.Flags))

	case isa.MUL:
		cpu.writeReg(rd, alu.Mul(cpu.R[rd], cpu.R[rs], &cpu.Flags))
	}
}

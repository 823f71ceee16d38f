package cpu

// primaryTable is built once at package init from the LR35902's bit-field
// encoding: the LD r,r' block (0x40-0x7F) and the ALU A,r block (0x80-0xBF)
// follow a regular 3-bit register/operation pattern, while the rest of the
// space is enumerated explicitly. Unpopulated entries are the eleven
// illegal opcodes.
var primaryTable [256]Instruction
var primaryDefined [256]bool

func setOp(opcode byte, mnemonic string, exec func(c *CPU) int) {
	primaryTable[opcode] = Instruction{Mnemonic: mnemonic, Exec: exec}
	primaryDefined[opcode] = true
}

func init() {
	buildLoadRegisterBlock()
	buildALUBlock()
	buildMiscBlock()
	buildControlBlock()
}

// buildLoadRegisterBlock fills 0x40-0x7F with LD r,r' (dest = bits 5:3, src
// = bits 2:0), except 0x76 which is HALT.
func buildLoadRegisterBlock() {
	for dest := 0; dest < 8; dest++ {
		for src := 0; src < 8; src++ {
			opcode := byte(0x40 + dest*8 + src)
			if opcode == 0x76 {
				continue
			}
			d, s := dest, src
			cycles := 4
			if d == r8HL || s == r8HL {
				cycles = 8
			}
			setOp(opcode, "LD r,r'", func(c *CPU) int {
				setReg8(c, d, getReg8(c, s))
				return cycles
			})
		}
	}
	setOp(0x76, "HALT", func(c *CPU) int {
		c.Halted = true
		return 4
	})
}

// buildALUBlock fills 0x80-0xBF with the eight ALU A,r operations (bits
// 5:3 select op, bits 2:0 select operand).
func buildALUBlock() {
	ops := []func(c *CPU, v byte){
		func(c *CPU, v byte) { aluAdd(c, v, false) },
		func(c *CPU, v byte) { aluAdd(c, v, true) },
		func(c *CPU, v byte) { aluSub(c, v, false) },
		func(c *CPU, v byte) { aluSub(c, v, true) },
		aluAnd,
		aluXor,
		aluOr,
		aluCp,
	}
	for op := 0; op < 8; op++ {
		for src := 0; src < 8; src++ {
			opcode := byte(0x80 + op*8 + src)
			o, s := op, src
			cycles := 4
			if s == r8HL {
				cycles = 8
			}
			setOp(opcode, "ALU A,r", func(c *CPU) int {
				ops[o](c, getReg8(c, s))
				return cycles
			})
		}
	}
}

func aluAdd(c *CPU, v byte, withCarry bool) {
	var res byte
	var z, n, h, cf bool
	if withCarry {
		res, z, n, h, cf = adc8(c.A, v, c.FlagCarry())
	} else {
		res, z, n, h, cf = add8(c.A, v)
	}
	c.A = res
	c.SetFlags(z, n, h, cf)
}

func aluSub(c *CPU, v byte, withCarry bool) {
	var res byte
	var z, n, h, cf bool
	if withCarry {
		res, z, n, h, cf = sbc8(c.A, v, c.FlagCarry())
	} else {
		res, z, n, h, cf = sub8(c.A, v)
	}
	c.A = res
	c.SetFlags(z, n, h, cf)
}

func aluAnd(c *CPU, v byte) {
	res, z, n, h, cf := and8(c.A, v)
	c.A = res
	c.SetFlags(z, n, h, cf)
}

func aluXor(c *CPU, v byte) {
	res, z, n, h, cf := xor8(c.A, v)
	c.A = res
	c.SetFlags(z, n, h, cf)
}

func aluOr(c *CPU, v byte) {
	res, z, n, h, cf := or8(c.A, v)
	c.A = res
	c.SetFlags(z, n, h, cf)
}

func aluCp(c *CPU, v byte) {
	_, z, n, h, cf := sub8(c.A, v)
	c.SetFlags(z, n, h, cf)
}

// buildMiscBlock fills the irregular-but-patterned 0x00-0x3F quadrant:
// NOP, LD rr,d16, LD (rr),A / LD A,(rr) variants, INC/DEC rr, INC/DEC r,
// LD r,d8, the rotate-accumulator/DAA/CPL/SCF/CCF family, and JR.
func buildMiscBlock() {
	setOp(0x00, "NOP", func(c *CPU) int { return 4 })

	pairs := [4]int{r16BC, r16DE, r16HL, r16SP}
	for p := 0; p < 4; p++ {
		base := byte(p * 16)
		idx := pairs[p]

		setOp(base+0x01, "LD rr,d16", func(c *CPU) int {
			setReg16(c, idx, c.fetch16())
			return 12
		})
		setOp(base+0x03, "INC rr", func(c *CPU) int {
			setReg16(c, idx, getReg16(c, idx)+1)
			return 8
		})
		setOp(base+0x0B, "DEC rr", func(c *CPU) int {
			setReg16(c, idx, getReg16(c, idx)-1)
			return 8
		})
		setOp(base+0x09, "ADD HL,rr", func(c *CPU) int {
			res, h, cf := addHL(c.HL(), getReg16(c, idx))
			c.SetHL(res)
			c.SetFlags(c.FlagZero(), false, h, cf)
			return 8
		})
	}

	setOp(0x02, "LD (BC),A", func(c *CPU) int { c.bus.Write(c.BC(), c.A); return 8 })
	setOp(0x12, "LD (DE),A", func(c *CPU) int { c.bus.Write(c.DE(), c.A); return 8 })
	setOp(0x22, "LD (HL+),A", func(c *CPU) int {
		c.bus.Write(c.HL(), c.A)
		c.SetHL(c.HL() + 1)
		return 8
	})
	setOp(0x32, "LD (HL-),A", func(c *CPU) int {
		c.bus.Write(c.HL(), c.A)
		c.SetHL(c.HL() - 1)
		return 8
	})
	setOp(0x0A, "LD A,(BC)", func(c *CPU) int { c.A = c.bus.Read(c.BC()); return 8 })
	setOp(0x1A, "LD A,(DE)", func(c *CPU) int { c.A = c.bus.Read(c.DE()); return 8 })
	setOp(0x2A, "LD A,(HL+)", func(c *CPU) int {
		c.A = c.bus.Read(c.HL())
		c.SetHL(c.HL() + 1)
		return 8
	})
	setOp(0x3A, "LD A,(HL-)", func(c *CPU) int {
		c.A = c.bus.Read(c.HL())
		c.SetHL(c.HL() - 1)
		return 8
	})

	reg8row := [8]int{r8B, r8C, r8D, r8E, r8H, r8L, r8HL, r8A}
	for row := 0; row < 8; row++ {
		idx := reg8row[row]
		incOp := byte(row*8 + 0x04)
		decOp := byte(row*8 + 0x05)
		ldOp := byte(row*8 + 0x06)
		cycles := 4
		if idx == r8HL {
			cycles = 12
		}
		ldCycles := 8
		if idx == r8HL {
			ldCycles = 12
		}

		setOp(incOp, "INC r", func(c *CPU) int {
			res, z, h := inc8(getReg8(c, idx))
			setReg8(c, idx, res)
			c.SetFlags(z, false, h, c.FlagCarry())
			return cycles
		})
		setOp(decOp, "DEC r", func(c *CPU) int {
			res, z, h := dec8(getReg8(c, idx))
			setReg8(c, idx, res)
			c.SetFlags(z, true, h, c.FlagCarry())
			return cycles
		})
		setOp(ldOp, "LD r,d8", func(c *CPU) int {
			setReg8(c, idx, c.fetch8())
			return ldCycles
		})
	}

	setOp(0x07, "RLCA", func(c *CPU) int {
		res, cf := rlc(c.A)
		c.A = res
		c.SetFlags(false, false, false, cf)
		return 4
	})
	setOp(0x0F, "RRCA", func(c *CPU) int {
		res, cf := rrc(c.A)
		c.A = res
		c.SetFlags(false, false, false, cf)
		return 4
	})
	setOp(0x17, "RLA", func(c *CPU) int {
		res, cf := rl(c.A, c.FlagCarry())
		c.A = res
		c.SetFlags(false, false, false, cf)
		return 4
	})
	setOp(0x1F, "RRA", func(c *CPU) int {
		res, cf := rr(c.A, c.FlagCarry())
		c.A = res
		c.SetFlags(false, false, false, cf)
		return 4
	})
	setOp(0x27, "DAA", func(c *CPU) int {
		res, z, cf := daa(c.A, c.FlagSubtract(), c.FlagHalfCarry(), c.FlagCarry())
		c.A = res
		c.SetFlags(z, c.FlagSubtract(), false, cf)
		return 4
	})
	setOp(0x2F, "CPL", func(c *CPU) int {
		c.A = ^c.A
		c.SetFlags(c.FlagZero(), true, true, c.FlagCarry())
		return 4
	})
	setOp(0x37, "SCF", func(c *CPU) int {
		c.SetFlags(c.FlagZero(), false, false, true)
		return 4
	})
	setOp(0x3F, "CCF", func(c *CPU) int {
		c.SetFlags(c.FlagZero(), false, false, !c.FlagCarry())
		return 4
	})

	setOp(0x08, "LD (a16),SP", func(c *CPU) int {
		addr := c.fetch16()
		c.bus.Write(addr, byte(c.SP))
		c.bus.Write(addr+1, byte(c.SP>>8))
		return 20
	})

	setOp(0x10, "STOP", func(c *CPU) int {
		c.fetch8() // STOP's mandatory (and unused) second byte
		c.Stopped = true
		return 4
	})

	setOp(0x18, "JR r8", func(c *CPU) int {
		e := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(e))
		return 12
	})
	jrConds := [4]int{0, 1, 2, 3}
	jrBase := [4]byte{0x20, 0x28, 0x30, 0x38}
	for i := 0; i < 4; i++ {
		cond := jrConds[i]
		setOp(jrBase[i], "JR cc,r8", func(c *CPU) int {
			e := int8(c.fetch8())
			if testCond(c, cond) {
				c.PC = uint16(int32(c.PC) + int32(e))
				return 12
			}
			return 8
		})
	}
}

// buildControlBlock fills 0xC0-0xFF: RET/JP/CALL (conditional and
// unconditional), PUSH/POP, RST, the accumulator/SP immediate-operand ALU
// ops, LDH, the interrupt toggles, and PREFIX CB.
func buildControlBlock() {
	condBase := map[byte]int{0xC0: 0, 0xC8: 1, 0xD0: 2, 0xD8: 3}
	for op, cond := range condBase {
		cnd := cond
		setOp(op, "RET cc", func(c *CPU) int {
			if testCond(c, cnd) {
				c.PC = c.pop16()
				return 20
			}
			return 8
		})
	}
	setOp(0xC9, "RET", func(c *CPU) int { c.PC = c.pop16(); return 16 })
	setOp(0xD9, "RETI", func(c *CPU) int {
		c.PC = c.pop16()
		c.IME = true
		return 16
	})

	jpCondBase := map[byte]int{0xC2: 0, 0xCA: 1, 0xD2: 2, 0xDA: 3}
	for op, cond := range jpCondBase {
		cnd := cond
		setOp(op, "JP cc,a16", func(c *CPU) int {
			addr := c.fetch16()
			if testCond(c, cnd) {
				c.PC = addr
				return 16
			}
			return 12
		})
	}
	setOp(0xC3, "JP a16", func(c *CPU) int { c.PC = c.fetch16(); return 16 })
	setOp(0xE9, "JP (HL)", func(c *CPU) int { c.PC = c.HL(); return 4 })

	callCondBase := map[byte]int{0xC4: 0, 0xCC: 1, 0xD4: 2, 0xDC: 3}
	for op, cond := range callCondBase {
		cnd := cond
		setOp(op, "CALL cc,a16", func(c *CPU) int {
			addr := c.fetch16()
			if testCond(c, cnd) {
				c.push16(c.PC)
				c.PC = addr
				return 24
			}
			return 12
		})
	}
	setOp(0xCD, "CALL a16", func(c *CPU) int {
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return 24
	})

	stk := [4]int{r16sBC, r16sDE, r16sHL, r16sAF}
	for p := 0; p < 4; p++ {
		base := byte(0xC1 + p*16)
		idx := stk[p]
		setOp(base, "POP rr", func(c *CPU) int {
			setReg16Stk(c, idx, c.pop16())
			return 12
		})
		setOp(base+4, "PUSH rr", func(c *CPU) int {
			c.push16(getReg16Stk(c, idx))
			return 16
		})
	}

	for n := 0; n < 8; n++ {
		opcode := byte(0xC7 + n*8)
		vector := uint16(n * 8)
		setOp(opcode, "RST n", func(c *CPU) int {
			c.push16(c.PC)
			c.PC = vector
			return 16
		})
	}

	setOp(0xC6, "ADD A,d8", func(c *CPU) int { aluAdd(c, c.fetch8(), false); return 8 })
	setOp(0xCE, "ADC A,d8", func(c *CPU) int { aluAdd(c, c.fetch8(), true); return 8 })
	setOp(0xD6, "SUB d8", func(c *CPU) int { aluSub(c, c.fetch8(), false); return 8 })
	setOp(0xDE, "SBC A,d8", func(c *CPU) int { aluSub(c, c.fetch8(), true); return 8 })
	setOp(0xE6, "AND d8", func(c *CPU) int { aluAnd(c, c.fetch8()); return 8 })
	setOp(0xEE, "XOR d8", func(c *CPU) int { aluXor(c, c.fetch8()); return 8 })
	setOp(0xF6, "OR d8", func(c *CPU) int { aluOr(c, c.fetch8()); return 8 })
	setOp(0xFE, "CP d8", func(c *CPU) int { aluCp(c, c.fetch8()); return 8 })

	setOp(0xE0, "LDH (a8),A", func(c *CPU) int {
		addr := 0xFF00 + uint16(c.fetch8())
		c.bus.Write(addr, c.A)
		return 12
	})
	setOp(0xF0, "LDH A,(a8)", func(c *CPU) int {
		addr := 0xFF00 + uint16(c.fetch8())
		c.A = c.bus.Read(addr)
		return 12
	})
	setOp(0xE2, "LD (C),A", func(c *CPU) int { c.bus.Write(0xFF00+uint16(c.C), c.A); return 8 })
	setOp(0xF2, "LD A,(C)", func(c *CPU) int { c.A = c.bus.Read(0xFF00 + uint16(c.C)); return 8 })
	setOp(0xEA, "LD (a16),A", func(c *CPU) int { c.bus.Write(c.fetch16(), c.A); return 16 })
	setOp(0xFA, "LD A,(a16)", func(c *CPU) int { c.A = c.bus.Read(c.fetch16()); return 16 })

	setOp(0xE8, "ADD SP,r8", func(c *CPU) int {
		e := int8(c.fetch8())
		res, h, cf := addSPSigned(c.SP, e)
		c.SP = res
		c.SetFlags(false, false, h, cf)
		return 16
	})
	setOp(0xF8, "LD HL,SP+r8", func(c *CPU) int {
		e := int8(c.fetch8())
		res, h, cf := addSPSigned(c.SP, e)
		c.SetHL(res)
		c.SetFlags(false, false, h, cf)
		return 12
	})
	setOp(0xF9, "LD SP,HL", func(c *CPU) int { c.SP = c.HL(); return 8 })

	setOp(0xF3, "DI", func(c *CPU) int { c.IME = false; c.eiDelay = 0; return 4 })
	setOp(0xFB, "EI", func(c *CPU) int { c.requestEI(); return 4 })

	setOp(0xCB, "PREFIX CB", func(c *CPU) int {
		cbOp := c.fetch8()
		return cbTable[cbOp].Exec(c)
	})
}

package cpu

// cbTable is the CB-prefixed dispatch table: rotates/shifts (0x00-0x3F),
// BIT (0x40-0x7F), RES (0x80-0xBF) and SET (0xC0-0xFF), each spanning the
// same 3-bit register selector as the primary table's (HL)-aware slots.
var cbTable [256]Instruction

func init() {
	buildCBRotateShiftBlock()
	buildCBBitBlock()
	buildCBResSetBlock()
}

func rwCycles(idx int, plain, indirect int) int {
	if idx == r8HL {
		return indirect
	}
	return plain
}

func buildCBRotateShiftBlock() {
	for row := 0; row < 8; row++ {
		for src := 0; src < 8; src++ {
			opcode := byte(row*8 + src)
			r, s := row, src
			cycles := rwCycles(s, 8, 16)
			setCB(opcode, "CB rot/shift", func(c *CPU) int {
				v := getReg8(c, s)
				var res byte
				var cf bool
				switch r {
				case 0:
					res, cf = rlc(v)
				case 1:
					res, cf = rrc(v)
				case 2:
					res, cf = rl(v, c.FlagCarry())
				case 3:
					res, cf = rr(v, c.FlagCarry())
				case 4:
					res, cf = sla(v)
				case 5:
					res, cf = sra(v)
				case 6:
					res = swap(v)
					cf = false
				default:
					res, cf = srl(v)
				}
				setReg8(c, s, res)
				c.SetFlags(res == 0, false, false, cf)
				return cycles
			})
		}
	}
}

func buildCBBitBlock() {
	for bit := 0; bit < 8; bit++ {
		for src := 0; src < 8; src++ {
			opcode := byte(0x40 + bit*8 + src)
			b, s := bit, src
			cycles := rwCycles(s, 8, 12)
			setCB(opcode, "BIT b,r", func(c *CPU) int {
				v := getReg8(c, s)
				zero := v&(1<<uint(b)) == 0
				c.SetFlags(zero, false, true, c.FlagCarry())
				return cycles
			})
		}
	}
}

func buildCBResSetBlock() {
	for bit := 0; bit < 8; bit++ {
		for src := 0; src < 8; src++ {
			resOp := byte(0x80 + bit*8 + src)
			setOp_ := byte(0xC0 + bit*8 + src)
			b, s := bit, src
			cycles := rwCycles(s, 8, 16)

			setCB(resOp, "RES b,r", func(c *CPU) int {
				setReg8(c, s, getReg8(c, s)&^(1<<uint(b)))
				return cycles
			})
			setCB(setOp_, "SET b,r", func(c *CPU) int {
				setReg8(c, s, getReg8(c, s)|(1<<uint(b)))
				return cycles
			})
		}
	}
}

func setCB(opcode byte, mnemonic string, exec func(c *CPU) int) {
	cbTable[opcode] = Instruction{Mnemonic: mnemonic, Exec: exec}
}

package instr

// Opcode identifies the operation an instruction performs.
type Opcode int

const (
	Push Opcode = iota
	Pop
	Dup
	Store
	Retrieve
	Add
	Sub
	Mul
	Div
	Mod
	Jump
	Jz
	Jn
	OutChar
	ReadChar
	Halt
	Exit
	Discard

	numOpcodes
)

// NumOpcodes is the number of defined opcodes.
const NumOpcodes = int(numOpcodes)

// LabelKeyword opens a new basic block.
const LabelKeyword = "label"

var opcodeNames = [numOpcodes]string{
	Push:     "push",
	Pop:      "pop",
	Dup:      "dup",
	Store:    "store",
	Retrieve: "retrieve",
	Add:      "add",
	Sub:      "sub",
	Mul:      "mul",
	Div:      "div",
	Mod:      "mod",
	Jump:     "jump",
	Jz:       "jz",
	Jn:       "jn",
	OutChar:  "outchar",
	ReadChar: "readchar",
	Halt:     "halt",
	Exit:     "exit",
	Discard:  "discard",
}

var keywordToOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, numOpcodes)
	for op, name := range opcodeNames {
		m[name] = Opcode(op)
	}
	return m
}()

// String returns the source keyword of the opcode.
func (o Opcode) String() string {
	if !o.Valid() {
		return "unknown"
	}

	return opcodeNames[o]
}

// Valid reports whether o is one of the defined opcodes.
func (o Opcode) Valid() bool {
	return o >= 0 && o < numOpcodes
}

// IsBranch reports whether the opcode may transfer control to a label.
func (o Opcode) IsBranch() bool {
	return o == Jump || o == Jz || o == Jn
}

// LookupOpcode maps a source keyword to its opcode. Keywords are
// case-sensitive.
func LookupOpcode(keyword string) (Opcode, bool) {
	op, ok := keywordToOpcode[keyword]
	return op, ok
}

// Opcodes returns every defined opcode in declaration order.
func Opcodes() []Opcode {
	ops := make([]Opcode, numOpcodes)
	for i := range ops {
		ops[i] = Opcode(i)
	}
	return ops
}

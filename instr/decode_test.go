package instr_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/blockvm/instr"
)

var _ = Describe("Tokenize", func() {
	It("should split on single spaces", func() {
		Expect(instr.Tokenize("push 72")).To(Equal([]string{"push", "72"}))
	})

	It("should collapse runs of spaces and ignore the edges", func() {
		Expect(instr.Tokenize("   jz    12  ")).To(Equal([]string{"jz", "12"}))
	})

	It("should return nothing for blank input", func() {
		Expect(instr.Tokenize("")).To(BeEmpty())
		Expect(instr.Tokenize("     ")).To(BeEmpty())
	})
})

var _ = Describe("Decode", func() {
	It("should decode a label declaration", func() {
		d, err := instr.Decode([]string{"label", "99999"}, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(d.IsLabel).To(BeTrue())
		Expect(d.Label).To(Equal(99999))
	})

	It("should accept negative labels", func() {
		d, err := instr.Decode([]string{"label", "-4"}, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Label).To(Equal(-4))
	})

	It("should reject a label without a number", func() {
		_, err := instr.Decode([]string{"label"}, 7)

		Expect(err).To(MatchError(instr.ErrMalformedInstruction))
		Expect(err.Error()).To(ContainSubstring("line 7"))
	})

	It("should reject a label that is not an integer", func() {
		_, err := instr.Decode([]string{"label", "main"}, 2)

		Expect(err).To(MatchError(instr.ErrMalformedInstruction))
	})

	It("should keep operands verbatim", func() {
		d, err := instr.Decode([]string{"push", "0042"}, 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(d.IsLabel).To(BeFalse())
		Expect(d.Inst.Line).To(Equal(3))
		Expect(d.Inst.Opcode).To(Equal(instr.Push))
		Expect(d.Inst.Operands).To(Equal([]string{"0042"}))
	})

	It("should not parse operands at decode time", func() {
		d, err := instr.Decode([]string{"jump", "nowhere"}, 4)

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Inst.Opcode).To(Equal(instr.Jump))
	})

	It("should report an unknown keyword with its line", func() {
		_, err := instr.Decode([]string{"PUSH", "1"}, 12)

		Expect(err).To(MatchError(instr.ErrMalformedInstruction))
		Expect(err.Error()).To(ContainSubstring("line 12"))
		Expect(err.Error()).To(ContainSubstring(`"PUSH"`))
	})

	It("should flag empty lines", func() {
		_, err := instr.Decode(nil, 5)

		Expect(err).To(Equal(instr.ErrEmptyLine))
	})

	DescribeTable("keywords",
		func(keyword string, op instr.Opcode) {
			d, err := instr.Decode([]string{keyword}, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(d.Inst.Opcode).To(Equal(op))
		},
		Entry("push", "push", instr.Push),
		Entry("pop", "pop", instr.Pop),
		Entry("dup", "dup", instr.Dup),
		Entry("store", "store", instr.Store),
		Entry("retrieve", "retrieve", instr.Retrieve),
		Entry("add", "add", instr.Add),
		Entry("sub", "sub", instr.Sub),
		Entry("mul", "mul", instr.Mul),
		Entry("div", "div", instr.Div),
		Entry("mod", "mod", instr.Mod),
		Entry("jump", "jump", instr.Jump),
		Entry("jz", "jz", instr.Jz),
		Entry("jn", "jn", instr.Jn),
		Entry("outchar", "outchar", instr.OutChar),
		Entry("readchar", "readchar", instr.ReadChar),
		Entry("halt", "halt", instr.Halt),
		Entry("exit", "exit", instr.Exit),
		Entry("discard", "discard", instr.Discard),
	)

	It("should reproduce the source tokens when re-serialized", func() {
		for _, line := range []string{
			"push -17",
			"jz 3",
			"  store  ",
			"outchar extra tokens kept",
		} {
			tokens := instr.Tokenize(line)
			d, err := instr.Decode(tokens, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(d.Inst.Tokens()).To(Equal(tokens))
			Expect(d.Inst.String()).To(Equal(strings.Join(tokens, " ")))
		}
	})
})

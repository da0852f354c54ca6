package api

import (
	"bytes"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/blockvm/console"
	"github.com/sarchlab/blockvm/core"
	"github.com/sarchlab/blockvm/program"
)

var _ = Describe("Driver", func() {
	var (
		out    *bytes.Buffer
		driver Driver
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		driver = NewDriverBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithFreq(1 * sim.GHz).
			WithMachineBuilder(core.NewBuilder().WithMaxSteps(1000)).
			WithConsole(console.NewStream(strings.NewReader(""), out)).
			Build("Driver")
	})

	It("should run a mapped program", func() {
		prog, err := program.ParseString("label 99999\npush 72\noutchar\npush 10\noutchar\nexit\n")
		Expect(err).NotTo(HaveOccurred())

		Expect(driver.MapProgram(prog)).To(Succeed())
		r := driver.Run()

		Expect(r.Err).NotTo(HaveOccurred())
		Expect(r.Status).To(Equal(0))
		Expect(out.String()).To(Equal("H\n"))
		Expect(driver.Machine().Stopped()).To(BeTrue())
	})

	It("should refuse a program without an entry block", func() {
		prog, err := program.ParseString("label 1\nexit\n")
		Expect(err).NotTo(HaveOccurred())

		Expect(driver.MapProgram(prog)).To(MatchError(core.ErrDanglingLabel))
		Expect(driver.Run().Err).To(MatchError(core.ErrNoProgram))
	})

	It("should report a fault with a non-zero status", func() {
		prog, err := program.ParseString("label 99999\npush 3\npush 0\ndiv\nexit\n")
		Expect(err).NotTo(HaveOccurred())

		Expect(driver.MapProgram(prog)).To(Succeed())
		r := driver.Run()

		Expect(r.Status).To(Equal(1))
		Expect(r.Err).To(MatchError(core.ErrDivisionByZero))
	})
})

var _ = Describe("TraceHook", func() {
	var (
		logs     *bytes.Buffer
		previous *slog.Logger
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		previous = slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(logs,
			&slog.HandlerOptions{Level: core.LevelTrace})))
	})

	AfterEach(func() {
		slog.SetDefault(previous)
	})

	It("should log each executed instruction", func() {
		driver := NewDriverBuilder().
			WithConsole(console.NewStream(nil, &bytes.Buffer{})).
			WithTrace(true).
			Build("Driver")

		prog, err := program.ParseString("label 99999\npush 7\npop\nexit\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(driver.MapProgram(prog)).To(Succeed())

		Expect(driver.Run().Err).NotTo(HaveOccurred())

		Expect(logs.String()).To(ContainSubstring("msg=Inst"))
		Expect(logs.String()).To(ContainSubstring("Opcode=push"))
		Expect(logs.String()).To(ContainSubstring("Operands=7"))
		Expect(logs.String()).To(ContainSubstring("Opcode=exit"))
	})

	It("should ignore other hook positions", func() {
		hook := NewTraceHook()
		hook.Func(sim.HookCtx{Pos: &sim.HookPos{Name: "Other"}})

		Expect(logs.Len()).To(BeZero())
	})
})

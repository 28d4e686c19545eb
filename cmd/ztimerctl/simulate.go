package ztimerctl

import (
	"fmt"

	"github.com/spf13/cobra"

	"ztimer-go/ztimer"
	"ztimer-go/ztimer/ztimertest"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay the core scheduler's scenarios against a mock backend",
	Long: `simulate drives a ztimer.Device with ztimertest.MockBackend and
prints a trace of every backend call and callback invocation, for each of
the scheduler's documented scenarios: a clean short-delay fire, a delay
that crosses a counter wrap, same-target FIFO ordering, disarm-before-fire,
a self-rearming callback, and a dense tail of near-simultaneous timers.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

type scenario struct {
	name string
	run  func()
}

func runSimulate(cmd *cobra.Command, args []string) error {
	scenarios := []scenario{
		{"short-delay", simulateShortDelay},
		{"crosses-overflow", simulateCrossesOverflow},
		{"fifo-ordering", simulateFIFOOrdering},
		{"disarm-before-fire", simulateDisarmBeforeFire},
		{"self-rearm", simulateSelfRearm},
		{"dense-tail", simulateDenseTail},
	}

	for _, s := range scenarios {
		fmt.Printf("=== %s ===\n", s.name)
		s.run()
		fmt.Println()
	}
	return nil
}

func traced(name string, backend *ztimertest.MockBackend) func(any) {
	return func(any) {
		fmt.Printf("  fire: %s (now=%d)\n", name, backend.Now())
	}
}

func printCalls(backend *ztimertest.MockBackend) {
	for _, c := range backend.Calls {
		fmt.Printf("  backend: %s\n", c)
	}
}

func simulateShortDelay() {
	backend := ztimertest.New(0)
	var d ztimer.Device
	d.Init(backend)

	tm := &ztimer.Timer{Callback: traced("t", backend)}
	d.Arm(tm, 1000)
	target, _ := backend.AlarmArmed()
	fmt.Printf("  armed alarm for %d\n", target)
	backend.FireAlarm(1000)
	printCalls(backend)
}

func simulateCrossesOverflow() {
	backend := ztimertest.New(0xFF00)
	var d ztimer.Device
	d.Init(backend)

	tm := &ztimer.Timer{Callback: traced("t", backend)}
	d.Arm(tm, 0x2000)
	fmt.Println("  delay crosses the counter's wrap; overflow alarm armed first")
	backend.FireOverflow(0)
	target, armed := backend.AlarmArmed()
	if armed {
		fmt.Printf("  overflow folded in; real alarm now armed for %d\n", target)
	}
	backend.FireAlarm(target)
	printCalls(backend)
}

func simulateFIFOOrdering() {
	backend := ztimertest.New(100)
	var d ztimer.Device
	d.Init(backend)

	tA := &ztimer.Timer{Callback: traced("A", backend)}
	tB := &ztimer.Timer{Callback: traced("B", backend)}
	d.Arm(tA, 50)
	d.Arm(tB, 50)
	backend.FireAlarm(150)
	printCalls(backend)
}

func simulateDisarmBeforeFire() {
	backend := ztimertest.New(0)
	var d ztimer.Device
	d.Init(backend)

	tm := &ztimer.Timer{Callback: traced("t", backend)}
	d.Arm(tm, 500)
	backend.SetNow(200)
	d.Disarm(tm)
	fmt.Printf("  disarmed at now=200; IsArmed=%v\n", tm.IsArmed())
	printCalls(backend)
}

func simulateSelfRearm() {
	backend := ztimertest.New(0)
	var d ztimer.Device
	var tm ztimer.Timer
	d.Init(backend)

	count := 0
	tm.Callback = func(any) {
		count++
		fmt.Printf("  fire: self (count=%d, now=%d)\n", count, backend.Now())
		if count < 3 {
			d.Arm(&tm, 100)
		}
	}
	d.Arm(&tm, 100)
	for i := 0; i < 3 && count < 3; i++ {
		target, armed := backend.AlarmArmed()
		if !armed {
			break
		}
		backend.FireAlarm(target)
	}
}

func simulateDenseTail() {
	backend := ztimertest.New(0)
	var d ztimer.Device
	d.Init(backend)

	tA := &ztimer.Timer{Callback: traced("A", backend)}
	tB := &ztimer.Timer{Callback: traced("B", backend)}
	tC := &ztimer.Timer{Callback: traced("C", backend)}
	d.Arm(tA, 100)
	d.Arm(tB, 101)
	d.Arm(tC, 102)
	backend.FireAlarm(110)
	printCalls(backend)
}

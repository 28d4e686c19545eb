package ztimerctl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ztimer-go/errors"
	"ztimer-go/ztimer"
)

// delayTicks is how far out watch arms a timer on each keypress, in backend
// ticks. Both live backends use a 1ms tick, so this is ~2 seconds.
const delayTicks = 2000

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Arm timers from keypresses against a live clock backend",
	Long: `watch puts the terminal into raw mode and arms a new timer on
every keypress, printing a line when each one fires. Press q or Ctrl-C to
exit.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// getContext returns a context that cancels on SIGINT/SIGTERM, mirroring
// the teacher's cmd.GetContext.
func getContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}

func runWatch(cmd *cobra.Command, args []string) error {
	backend, closeBackend, err := selectBackend(globalBackend)
	if err != nil {
		return err
	}
	defer closeBackend()

	var d ztimer.Device
	d.Init(backend)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.ErrNotATerminal
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return errors.WrapWithDetail(err, errors.ErrUnsupported, "MakeRaw", "failed to put terminal in raw mode")
	}
	defer term.Restore(fd, oldState)

	fmt.Print("ztimerctl watch: press any key to arm a ~2s timer, q to quit\r\n")

	keys := make(chan byte)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				return
			}
			keys <- buf[0]
		}
	}()

	ctx := getContext()
	var seq int
	for {
		select {
		case <-ctx.Done():
			fmt.Print("\r\n")
			return nil
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			if k == 'q' || k == 0x03 {
				fmt.Print("\r\n")
				return nil
			}

			seq++
			id := seq
			start := time.Now()
			tm := &ztimer.Timer{}
			tm.Callback = func(any) {
				fmt.Printf("timer %d fired after %v\r\n", id, time.Since(start).Round(time.Millisecond))
			}
			d.Arm(tm, delayTicks)
			fmt.Printf("armed timer %d (key %q)\r\n", id, k)
		}
	}
}

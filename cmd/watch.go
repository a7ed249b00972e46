package cmd

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/output"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream focus-changed events",
	Long:  "Install the change-notification hooks of every enabled backend and stream the unified focus-changed events until interrupted.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("duration", 0, "Stop after this long (0 = until interrupted)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Native hooks deliver to the thread that installed them, so the
	// engine must be built on the same locked thread that pumps messages.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if backend.PumpEventsFunc == nil {
		return backend.ErrUnsupported
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	unsubscribe := engine.SubscribeFocus(func(ev backend.FocusEvent) {
		res := output.EventResult{TS: ev.Time.Unix(), Backend: ev.Source, Node: ev.Node}
		if err := output.Print(res); err != nil {
			log.Warn("print failed", zap.Error(err))
		}
	})
	defer unsubscribe()

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	duration, _ := cmd.Flags().GetDuration("duration")
	go func() {
		if duration > 0 {
			timer := time.NewTimer(duration)
			defer timer.Stop()
			select {
			case <-sig:
			case <-timer.C:
			}
		} else {
			<-sig
		}
		close(stop)
	}()

	return backend.PumpEventsFunc(stop)
}

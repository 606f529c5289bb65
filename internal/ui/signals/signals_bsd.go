//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package signals

import (
	"os/signal"
	"syscall"
)

func setupSignals() {
	signal.Notify(progress.ch, syscall.SIGINFO, syscall.SIGUSR1)
}

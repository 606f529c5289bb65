// Package signals delivers the signals which request a progress update.
package signals

import (
	"os"
	"sync"
)

// progress is set up once. Each exattr command runs at most one
// progress.Counter, which is the only receiver of the channel.
var progress struct {
	sync.Once
	ch chan os.Signal
}

// GetProgressChannel returns the channel on which progress requests
// (SIGUSR1, and SIGINFO on the BSDs) arrive.
func GetProgressChannel() <-chan os.Signal {
	progress.Do(func() {
		progress.ch = make(chan os.Signal, 1)
		setupSignals()
	})

	return progress.ch
}

//go:build !pi

package button

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// InitTouch initializes all the touch pad pins and fetches a touch event
// channel. Off the Pi, SIGHUP/SIGUSR1/SIGUSR2 simulate the pads.
func InitTouch() <-chan TouchEvent {
	log.Infoln("Initializing touch handler")

	c := make(chan TouchEvent, 5)
	go simulateTouch(c)
	return c
}

func simulateTouch(c chan<- TouchEvent) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGUSR1, syscall.SIGUSR2)
	defer close(sigChan)

	for sig := range sigChan {
		pad := PadA
		switch sig {
		case syscall.SIGUSR1:
			pad = PadB
		case syscall.SIGUSR2:
			pad = PadC
		}
		c <- TouchEvent{
			Pad:     pad,
			Pressed: true,
		}
	}
}

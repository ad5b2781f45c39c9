//go:build pi

package button

import (
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// The touch pads sit on fixed GPIOs and pull their line low while touched.
var padPins = map[Pad]string{
	PadA: "GPIO21",
	PadB: "GPIO20",
	PadC: "GPIO16",
}

// InitTouch initializes all the touch pad pins and fetches a touch event
// channel.
func InitTouch() <-chan TouchEvent {
	log.Infoln("Initializing touch handler")

	c := make(chan TouchEvent, 5)
	for pad, name := range padPins {
		pin := gpioreg.ByName(name)
		go handlePad(pad, pin, c)
	}
	return c
}

func handlePad(pad Pad, b gpio.PinIO, c chan TouchEvent) {
	if err := b.In(gpio.PullUp, gpio.BothEdges); err != nil {
		log.Fatal(err)
	}

	last := b.Read()
	for {
		// wait for the edge
		if !b.WaitForEdge(time.Second) {
			continue
		}

		// debounce
		l := b.Read()
		if l == last {
			continue
		}

		time.Sleep(15 * time.Millisecond)
		if l == b.Read() {
			// ... and handle
			last = l
			c <- TouchEvent{
				Pad:     pad,
				Pressed: l == gpio.Low,
			}
		}
	}
}

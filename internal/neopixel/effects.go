package neopixel

import (
	"fmt"
	"time"

	"github.com/callebjorkell/neostrip/internal/pixel"
	log "github.com/sirupsen/logrus"
)

// Flash blinks all strips in the given color a few times and leaves them
// dark.
func (l *LedController) Flash(color pixel.Pixel) {
	done := l.interruptor.Queue()
	defer done()

	log.Infof("Flashing color %08x", uint32(color))

	l.setColor(color)
	<-time.After(250 * time.Millisecond)
	l.setColor(0)
	<-time.After(40 * time.Millisecond)
	l.setColor(color)
	<-time.After(100 * time.Millisecond)
	l.setColor(0)
	<-time.After(40 * time.Millisecond)
	l.setColor(color)
	<-time.After(100 * time.Millisecond)
	l.setColor(0)

	log.Debug("Flashing done...")
}

// Rainbow scrolls a full rainbow across the strips, fading in and out at the
// ends. It returns early when another animation queues up.
func (l *LedController) Rainbow() error {
	done := l.interruptor.Queue()
	defer done()
	defer l.Clear(true)

	log.Debug("Displaying rainbow")
	tick := time.NewTicker(30 * time.Millisecond)
	defer tick.Stop()

	for step := 0; step <= 450; step++ {
		if l.interruptor.IsInterrupted() {
			return fmt.Errorf("animation was interrupted")
		}

		for i := 0; i < l.strips; i++ {
			l.Strip(i).FillRainbow(uint8(step), 4)
		}

		b := l.brightness
		if step < 50 {
			b = pixel.Scale8(b, uint8(step*255/50))
		}
		if step > 400 {
			b = pixel.Scale8(b, uint8((450-step)*255/50))
		}

		if err := l.ShowAt(b); err != nil {
			return err
		}

		<-tick.C
	}

	return nil
}

// Wipe sweeps the color across every strip, one LED per tick.
func (l *LedController) Wipe(color pixel.Pixel) error {
	done := l.interruptor.Queue()
	defer done()

	log.Debugf("Wiping color %08x", uint32(color))
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	longest := 0
	for i := 0; i < l.strips; i++ {
		if n := l.Strip(i).Len(); n > longest {
			longest = n
		}
	}

	for led := 0; led < longest; led++ {
		if l.interruptor.IsInterrupted() {
			return fmt.Errorf("animation was interrupted")
		}

		for i := 0; i < l.strips; i++ {
			if s := l.Strip(i); led < s.Len() {
				*s.Get(led) = color
			}
		}
		if err := l.Show(); err != nil {
			return err
		}

		<-tick.C
	}

	return nil
}

// Breathe pulses the color until another animation takes over. It returns
// immediately; the animation runs on its own goroutine.
func (l *LedController) Breathe(color pixel.Pixel) {
	done := l.interruptor.Queue()

	go func() {
		defer done()
		defer l.Clear(true)
		for {
			if err := l.singleBreath(color); err != nil {
				log.Debug("Stopping breathing: ", err)
				break
			}
		}
	}()
}

func (l *LedController) singleBreath(color pixel.Pixel) error {
	light := 0
	increase := true
	log.Debugf("Breathing color: %08x", uint32(color))
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		if l.interruptor.IsInterrupted() {
			log.Debug("Animation interrupted.")
			return fmt.Errorf("animation is interrupted")
		}

		for i := 0; i < l.strips; i++ {
			l.Strip(i).FillSolid(color)
		}
		if err := l.ShowAt(pixel.Scale8Video(l.brightness, uint8(light*255/100))); err != nil {
			return err
		}

		if increase {
			light++
			if light > 100 {
				increase = false
			}
		} else {
			if light == 0 {
				break
			}
			light--
		}

		<-tick.C
	}
	return nil
}

func (l *LedController) setColor(color pixel.Pixel) error {
	for i := 0; i < l.strips; i++ {
		l.Strip(i).FillSolid(color)
	}
	return l.Show()
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/callebjorkell/neostrip/internal/button"
	"github.com/callebjorkell/neostrip/internal/pixel"
	log "github.com/sirupsen/logrus"
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	log.SetFormatter(&colorFormatter{})

	if err := RootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

// startTouchDemo runs the strips off the touch pads until interrupted: pad A
// scrolls a rainbow, pad B wipes a color, pad C pulses.
func startTouchDemo(conf *Config) error {
	led, err := buildController(conf)
	if err != nil {
		return err
	}
	defer led.Close()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	wipeColors := []pixel.Pixel{
		pixel.FromHSV(pixel.HueRed, 255, 255),
		pixel.FromHSV(pixel.HueBlue, 255, 255),
		pixel.FromHSV(pixel.HueGreen, 255, 255),
		pixel.FromHSV(pixel.HueOrange, 255, 255),
	}
	nextWipe := 0

	go func() {
		events := button.InitTouch()
		for e := range events {
			log.Infof("Event: %v", e)
			if !e.Pressed {
				continue
			}
			switch e.Pad {
			case button.PadA:
				go led.Rainbow()
			case button.PadB:
				color := wipeColors[nextWipe%len(wipeColors)]
				nextWipe++
				go led.Wipe(color)
			case button.PadC:
				led.Breathe(pixel.FromHSV(pixel.HuePurple, 255, 255))
			}
		}
	}()

	<-signalChan
	log.Info("Done...")
	return nil
}

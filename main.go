package main

import (
	"flag"
	"fmt"
	"time"

	"log"

	"ne2k/dp8390"
	"ne2k/logger"
	"ne2k/monitor"
	"ne2k/nic"
	"ne2k/ports"
	"ne2k/regfile"
	"ne2k/seq"

	"github.com/jroimartin/gocui"
)

var (
	nogui   = flag.Bool("nogui", false, "print the port trace to stdout instead of the gocui monitor")
	logfile = flag.String("logfile", "", "log file path (default: stdout)")
	baseArg = flag.Int("base", 0x300, "base port address of the controller window")
	noread  = flag.Bool("noread", false, "rebuild the command byte on page turns instead of read-modify-write")
	verify  = flag.Bool("verify", true, "check the declared starting state against the hardware on every run")
)

func main() {
	flag.Parse()

	if *nogui {
		l := logger.New(*logfile)
		if err := runDemo(monitor.NewSimple(), nil, l); err != nil {
			l.Fatalf("demo failed: %v", err)
		}
		return
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln("Couldn't create gui!")
	}
	defer g.Close()

	g.SetManagerFunc(layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		log.Panicln(err)
	}

	// start the register demo
	g.Update(startDemo)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
}

// run the demo --> trace to the gui views, registers refreshed by a ticker
func startDemo(g *gocui.Gui) error {
	for _, name := range []string{"trace", "registers", "status"} {
		v, err := g.View(name)
		if err != nil {
			return err
		}
		v.Clear()
	}

	l := logger.New(*logfile)
	mon := monitor.NewGui(g)
	_ = mon.WriteStatus("Starting DP8390 register monitor..")

	go func() {
		ctrl := demoController(g)
		if err := runDemo(mon, ctrl, l); err != nil {
			_ = mon.WriteStatus(fmt.Sprintf("demo failed: %v", err))
		}
	}()
	return nil
}

// demoController builds the modeled chip and keeps the registers view
// refreshed while the demo pokes at it
func demoController(g *gocui.Gui) *dp8390.Controller {
	ctrl := dp8390.New(uint16(*baseArg), nil)

	ticker := time.NewTicker(time.Second * 1)
	go func() {
		for range ticker.C {
			g.Update(func(g *gocui.Gui) error {
				v, err := g.View("registers")
				if err != nil {
					return err
				}
				v.Clear()
				ctrl.DumpRegisters(v)
				return nil
			})
		}
	}()
	return ctrl
}

// runDemo drives a full bring-up against the controller: program the
// ring, start the chip, sweep the counters and the multicast filter,
// stop it again. Every step is a typed computation; the page turns in
// the trace are the only command register traffic.
func runDemo(mon monitor.Display, ctrl *dp8390.Controller, l *log.Logger) error {
	if ctrl == nil {
		ctrl = dp8390.New(uint16(*baseArg), nil)
	}

	rec := ports.NewRecorder(ctrl)
	rec.OnAccess = mon.TraceAccess

	strategy := seq.ReadMask
	if *noread {
		strategy = seq.Reconstruct
	}
	dev := seq.New(regfile.New(rec, uint16(*baseArg)), strategy, *verify, l)

	_ = mon.WriteStatus("Programming receive ring and bus interface..")
	if _, err := seq.Run(dev, nic.InitSequence(nic.DCRFIFO2|nic.DCRAutoInit, 0x46, 0x80, 0x46)); err != nil {
		return err
	}

	_ = mon.WriteStatus("Starting the controller..")
	if _, err := seq.Run(dev, seq.SetPower[seq.On, seq.Off, seq.Page0]()); err != nil {
		return err
	}

	// the model has no receive path; pretend a few damaged frames came in
	ctrl.AddCRCErrors(3)

	filter, err := seq.Run(dev, nic.ReadMulticastFilter[seq.On]())
	if err != nil {
		return err
	}
	_ = mon.WriteStatus(fmt.Sprintf("Multicast filter: %x", filter))

	crc, err := seq.Run(dev, nic.ReadCRCErrors[seq.On]())
	if err != nil {
		return err
	}
	_ = mon.WriteStatus(fmt.Sprintf("CRC errors since last sweep: %d", crc))

	_ = mon.WriteStatus("Stopping the controller..")
	if _, err := seq.Run(dev, seq.SetPower[seq.Off, seq.On, seq.Page0]()); err != nil {
		return err
	}

	_ = mon.WriteStatus(fmt.Sprintf("Done, %d port operations issued.", len(rec.Trace())))
	return nil
}

// gocui layout
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// up -> port trace
	if v, err := g.SetView("trace", 0, 0, maxX-1, maxY-18); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Port trace"
		v.Autoscroll = true
	}

	// middle -> register values
	if v, err := g.SetView("registers", 0, maxY-17, maxX-1, maxY-13); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
	}
	// down -> status
	if v, err := g.SetView("status", 0, maxY-12, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

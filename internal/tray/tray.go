package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"
)

var (
	statusItem *systray.MenuItem
	quitItem   *systray.MenuItem
)

// Handle is the thread-safe way to update the tray from the poll goroutine.
// A single actor goroutine owns every systray call; Handle only queues counts.
type Handle struct {
	updates  chan int
	done     chan struct{}
	stopOnce sync.Once
	render   func(count int)
}

// Ensure Handle implements Sink at compile time.
var _ Sink = (*Handle)(nil)

func newHandle(render func(count int)) *Handle {
	h := &Handle{
		updates: make(chan int, 1),
		done:    make(chan struct{}),
		render:  render,
	}
	go h.loop()
	return h
}

// SetAwaiting queues a new count. If the actor hasn't picked up the previous
// one yet, it is replaced: only the latest state matters.
func (h *Handle) SetAwaiting(count int) {
	for {
		select {
		case <-h.done:
			return
		case h.updates <- count:
			return
		default:
		}
		select {
		case <-h.updates:
		default:
		}
	}
}

// Stop ends the actor goroutine.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Handle) loop() {
	for {
		select {
		case <-h.done:
			return
		case count := <-h.updates:
			h.render(count)
		}
	}
}

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStart receives the handle once the tray is ready; onExit runs when the
// tray exits, either through Quit or the Quit menu item.
func Run(initial int, icons Icons, onStart func(*Handle), onExit func()) {
	var h *Handle

	onReady := func() {
		header := systray.AddMenuItem("ogs-notify", "")
		header.Disable()

		statusItem = systray.AddMenuItem("", "")
		statusItem.Disable()

		systray.AddSeparator()
		quitItem = systray.AddMenuItem("Quit", "Stop watching for games")

		h = newHandle(func(count int) { render(icons, count) })
		render(icons, initial)

		go handleClicks()

		if onStart != nil {
			onStart(h)
		}
	}

	onQuit := func() {
		if h != nil {
			h.Stop()
		}
		if onExit != nil {
			onExit()
		}
	}

	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func render(icons Icons, count int) {
	status := StatusFor(count)
	systray.SetIcon(icons.For(status))
	systray.SetTooltip(formatTooltip(count))
	statusItem.SetTitle(formatTooltip(count))
}

func handleClicks() {
	<-quitItem.ClickedCh
	log.Println("[tray] Quit requested from menu")
	systray.Quit()
}

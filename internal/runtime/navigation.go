package runtime

import (
	"context"
	"fmt"
)

type runMode int

const (
	// runNormal executes unless the slide defers execution.
	runNormal runMode = iota
	// runForce executes even deferred slides.
	runForce
	// runNone displays only.
	runNone
)

func (m runMode) String() string {
	switch m {
	case runForce:
		return "force"
	case runNone:
		return "none"
	}
	return "normal"
}

// Start records the session start and announces the presentation mode.
func (d *Deck) Start() {
	d.started = d.now()
	d.setPresentation(d.presentation)
}

// RunInit executes the setup slide once, without displaying it.
// It reports whether the deck has a setup slide.
func (d *Deck) RunInit() bool {
	if d.init == nil {
		return false
	}
	for _, frag := range d.init.Codeblocks {
		if err := d.runner.Exec(d.env, frag); err != nil {
			d.reportError(err)
		}
	}
	fmt.Fprintln(d.out, "% executed initial setup slide.")
	d.logger.Debug("init slide executed", "fragments", len(d.init.Codeblocks))
	return true
}

// Next runs deferred code of the current slide if any, otherwise advances one slide.
func (d *Deck) Next(ctx context.Context) {
	if d.pendingExec {
		d.pendingExec = false
		d.execOnReturn = false
		d.logger.Debug("running deferred slide", "slide", d.current)
		d.run(d.slides[d.current-1], runNormal, false)
		return
	}

	if d.current >= len(d.slides) {
		fmt.Fprintln(d.out, "% The slideshow is over.")
		return
	}
	d.current++
	d.doSlide(ctx, d.current, runNormal, true)
}

// Prev goes back one slide and displays and runs it.
func (d *Deck) Prev(ctx context.Context) {
	if d.current <= 1 {
		if d.current == 0 {
			fmt.Fprintln(d.out, "% No slide has been shown yet.")
		} else {
			fmt.Fprintln(d.out, "% Already at the first slide.")
		}
		return
	}
	d.pendingExec = false
	d.execOnReturn = false
	d.current--
	d.doSlide(ctx, d.current, runNormal, true)
}

// Rerun displays and runs the current slide again.
func (d *Deck) Rerun(ctx context.Context) {
	if d.current == 0 {
		fmt.Fprintln(d.out, "% No slide has been shown yet.")
		return
	}
	d.pendingExec = false
	d.execOnReturn = false
	d.doSlide(ctx, d.current, runNormal, true)
}

// Show displays slide n without running it. The cursor does not move.
func (d *Deck) Show(ctx context.Context, n int) {
	if !d.inRange(n) {
		return
	}
	d.doSlide(ctx, n, runNone, true)
}

// Goto jumps to slide n. Backward jumps force-run the target only; forward
// jumps force-run every slide in between and treat the target as a normal next.
func (d *Deck) Goto(ctx context.Context, n int) {
	if !d.inRange(n) {
		return
	}
	d.pendingExec = false
	d.execOnReturn = false

	if n <= d.current {
		d.current = n
		d.doSlide(ctx, n, runForce, true)
		return
	}
	for d.current < n-1 {
		d.current++
		d.doSlide(ctx, d.current, runForce, true)
	}
	d.Next(ctx)
}

// RunAll force-runs every remaining slide, the last one included.
func (d *Deck) RunAll(ctx context.Context) {
	d.pendingExec = false
	d.execOnReturn = false
	for d.current < len(d.slides) {
		d.current++
		d.doSlide(ctx, d.current, runForce, true)
	}
}

// Info prints the cursor position and, with the timer enabled, the elapsed time.
func (d *Deck) Info() {
	fmt.Fprintf(d.out, "%% Now at slide %d of %d from deck %s\n", d.current, len(d.slides), d.path)
	if d.timer {
		fmt.Fprintf(d.out, "%% Elapsed time: %s\n", d.now().Sub(d.started).Round(timeResolution))
	}
}

// TogglePresentation switches presentation mode.
func (d *Deck) TogglePresentation() {
	d.setPresentation(!d.presentation)
}

// ToggleHighlight switches code highlighting, when a highlighter is available.
func (d *Deck) ToggleHighlight() {
	if d.highlighter == nil {
		fmt.Fprintln(d.out, "% Code highlighting is not available.")
		return
	}
	d.highlight = !d.highlight
	fmt.Fprintf(d.out, "%% Code highlighting is now %s\n", onOff(d.highlight))
}

func (d *Deck) setPresentation(on bool) {
	d.presentation = on
	fmt.Fprintf(d.out, "%% presentation mode is now %s\n", onOff(on))
}

func (d *Deck) inRange(n int) bool {
	if n < 1 || n > len(d.slides) {
		fmt.Fprintf(d.out, "%% Slide #%d is out of range (1 - %d).\n", n, len(d.slides))
		return false
	}
	return true
}

func (d *Deck) doSlide(ctx context.Context, num int, mode runMode, echo bool) {
	s := d.slides[num-1]
	d.logger.Debug("slide", "slide", num, "mode", mode, "echo", echo)

	if echo {
		d.display(s)
		d.renderBullets(ctx, s, mode)
	}
	d.run(s, mode, echo)

	if mode == runNormal && echo && s.NoExec && !s.NeverExec && s.HasCode() {
		d.pendingExec = true
		d.execOnReturn = true
		d.logger.Debug("slide deferred", "slide", num, "pending_exec", true)
	}
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

/*
Package runner implements the console driver loop of a slide session.

It sits between the deck (the navigation state machine) and the terminal. Each step
reads one line and turns it into a deck command, a usage hint, or interpreter input
that runs in the same environment as the slides.

# Key Components

  - Runner: the read-dispatch loop, returning a Signal (continue, quit, reload).
  - Registry: the table of "!" commands with their abbreviations and arity.
  - TextReader and ReadlineReader: line readers for pipes and interactive terminals.
  - SignalManager: routes Ctrl+C to running code or to the prompt.

# Usage

	reader := runner.NewTextReader(os.Stdin, os.Stdout)
	r := runner.NewRunner(deck, backend, env, reader)

	sig, err := r.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if sig.Kind == runner.Reload {
		// rebuild the deck and resume at sig.Slide
	}
*/
package runner

/*
Package sliderepl runs annotated source files as live-coding slide decks.

A deck is a script whose comments carry slide markers. Each slide shows its
title and notes, echoes its code at an interactive prompt and runs it in an
environment shared by the whole deck, so a value defined on one slide is
visible on every later slide. Between slides the user can type code of their
own at the same prompt.

# Deck Format

	### slide::
	# Introduction notes shown in the slide banner.
	fruits = ["apple", "pear"]
	len(fruits)

	### slide::p
	##### Deferred code #####
	fruits.append("plum")

Flags after "slide::" change how a slide behaves: p waits for return before
running, x never runs, i keeps the screen in presentation mode, s marks the
setup slide, l drops the slide from short presentations and b enables
"### * bullet" lines. "### file::path" includes another deck file in place.

# Usage

	session := sliderepl.New("slides/01_basics.star",
		sliderepl.WithPresentation(true),
	)
	if err := session.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

At the prompt, an empty line advances, "!" commands navigate (see "?"), and
anything else is evaluated as code.
*/
package sliderepl

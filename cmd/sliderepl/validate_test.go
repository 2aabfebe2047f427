package main

import (
	"bytes"
	"testing"

	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestPrintOutline(t *testing.T) {
	var buf bytes.Buffer
	printOutline(&buf,
		&domain.Slide{Codeblocks: make([]*domain.Fragment, 2)},
		[]*domain.Slide{
			{Index: 1, Title: "Lists", SlideFlags: domain.SlideFlags{NoExec: true}},
			{Index: 2, Intro: []string{"Dicts"}, SlideFlags: domain.ParseFlags("xb")},
		})

	out := buf.String()
	assert.Contains(t, out, "  setup  2 fragment(s)\n")
	assert.Contains(t, out, "    1  Lists")
	assert.Contains(t, out, "    2  Dicts")
	assert.Contains(t, out, " xb ")
}

func TestFlagLetters(t *testing.T) {
	assert.Equal(t, "", flagLetters(domain.SlideFlags{}))
	assert.Equal(t, "p", flagLetters(domain.ParseFlags("p")))
	assert.Equal(t, "x", flagLetters(domain.ParseFlags("px")))
	assert.Equal(t, "il", flagLetters(domain.ParseFlags("li")))
}

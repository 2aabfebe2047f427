/*
Package domain contains the core data model of the slide engine.

It is kept free of I/O and of any interpreter dependency.

# Key Entities

  - Slide: one navigable unit (title, intro lines, bullets, code fragments and flags).
  - SlideFlags: the single-letter options of the "### slide::" marker.
  - Fragment: one compiled, independently executable piece of slide code.
*/
package domain

package sliderepl

// Version is the release of the sliderepl module.
var Version = "0.3.0"

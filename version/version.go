package version

// Version is overridden at build time with
// -ldflags=-X=github.com/ollama/pretokenize/version.Version=v0.0.0
var Version string = "0.0.0"

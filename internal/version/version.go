package version

// Version is overridden at build time via -ldflags "-X ...version.Version=<tag>"
var Version = "v0.1.0"

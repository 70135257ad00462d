package version

// Version is the build-time server version, overridden via -ldflags.
var Version = "dev"

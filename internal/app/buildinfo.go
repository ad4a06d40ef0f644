package app

// Build information populated via -ldflags at build time. It is recorded in
// the meta section of every index.json.
var (
    // BuildVersion is the semantic version of the built binary.
    BuildVersion = "0.0.0-dev"
    // BuildCommit is the VCS commit SHA associated with the build.
    BuildCommit  = "unknown"
)

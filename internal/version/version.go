package version

// Version is the docmap version. Overridden at build time with
// -ldflags "-X github.com/hashicorp-forge/docmap/internal/version.Version=...".
var Version = "0.1.0-dev"

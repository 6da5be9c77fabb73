package config

// Version is the atlas binary version.
// Set at build time via: -ldflags "-X github.com/oatlas/oatlas/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"

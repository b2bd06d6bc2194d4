package portal

// Version is the release of the portal client library and CLI.
const Version = "0.1.0"

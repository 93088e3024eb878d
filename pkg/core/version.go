package core

// Version is the library release.
const Version = "1.0.0"

// DefaultUserAgent identifies this client on the wire.
const DefaultUserAgent = "nakula-client/" + Version

package version

// Name for this
const Name string = "logoexport"

// Version for this
var Version = "0.2.0"

// Revision for this, set with -ldflags at build time
var Revision = "HEAD"

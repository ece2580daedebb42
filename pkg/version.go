package biotope

var (
	// Version of the biotope app. It is set by build flags.
	Version = "v0.1.0"
	// Build timestamp. It is set by build flags.
	Build = "n/a"
)

package cmd

var (
	DefaultLogFile  = "dockerctx.log"
	DefaultLogLevel = "warn"
)

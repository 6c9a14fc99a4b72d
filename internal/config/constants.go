package config

import "time"

// Application constants
const (
	// Application Info
	AppName    = "TechSmart Aggregator"
	AppVersion = "1.0.0"
	BinaryName = "aggregator"

	// Pipeline defaults
	DefaultEmailColumn       = 2 // student e-mail address in the TechSmart export
	DefaultPruneThreshold    = 4 // header rows only
	DefaultPreset            = "detailed"
	DefaultDenominatorPolicy = "last"
	DefaultStageTimeout      = time.Minute

	// File Paths (relative to the working directory)
	DefaultOutputDir = "Output"
	DefaultLogFile   = "logs/aggregator.log"
	DefaultTraceFile = "logs/trace.json"

	// Output
	OutputExtension = ".csv"
)

// Package config provides configuration for the gradebook aggregator.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority, ambient settings only)
//	2. A YAML file (TSA_CONFIG_FILE, ./aggregator.yaml or ./configs/aggregator.yaml)
//	3. Default values (lowest priority)
//
// The defaults reproduce the stock behavior: drop the e-mail column, prune
// columns holding only header rows, pool the detailed TechSmart categories,
// write Output/<name>.csv and open it.
//
// # Environment Variables
//
// Environment variables follow the pattern TSA_<SECTION>_<FIELD> and cover
// the logging, output, viewer and telemetry sections:
//
//	TSA_LOGGING_LEVEL=debug
//	TSA_OUTPUT_DIR=reports
//	TSA_VIEWER_ENABLED=false
//
// The pipeline section is read from YAML only, so the environment never
// changes how a gradebook is transformed:
//
//	pipeline:
//	  preset: split
//	  denominator_policy: strict
//	  groups:
//	    - label: Practice
//	      categories: [Classwork, Homework]
//	  assessments: [Assessment, Quiz]
//
// # Path Management
//
// Paths resolves configured directories against the working directory:
//
//	paths, err := config.GetPaths(cfg)
//	out := paths.OutputPathFor("Period 3.csv") // <wd>/Output/Period 3.csv
package config

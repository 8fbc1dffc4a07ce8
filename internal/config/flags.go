package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagCapacity  = flag.Int("capacity", 0, "Vertex capacity per mesh")
	flagNormals   = flag.Bool("normals", false, "Recalculate normals on finalize")
	flagTangents  = flag.Bool("tangents", false, "Compute tangents on finalize")
	flagNoValid   = flag.Bool("no-validate", false, "Skip triangle index validation")
	flagOutputDir = flag.String("out-dir", "", "Output directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCapacity > 0 {
		cfg.Builder.Capacity = *flagCapacity
	}
	if *flagNormals {
		cfg.Builder.RecalculateNormals = true
	}
	if *flagTangents {
		cfg.Builder.ComputeTangents = true
	}
	if *flagNoValid {
		cfg.Builder.Validate = false
	}
	if *flagOutputDir != "" {
		cfg.Output.Dir = *flagOutputDir
	}
}

package config

import "github.com/spf13/pflag"

var (
	flagConfig      string
	flagDebug       bool
	flagFOV         float64
	flagScale       float64
	flagStep        float64
	flagTurns       float64
	flagVertices    bool
	flagDepthPolicy string
	flagLogFile     string
	flagNoHold      bool
)

// RegisterFlags binds the override flags to fs. Call it once while building
// the command line.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&flagConfig, "config", "c", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.Float64Var(&flagFOV, "fov", 0, "Field of view (perspective strength)")
	fs.Float64Var(&flagScale, "scale", 0, "Uniform model scale applied at load")
	fs.Float64Var(&flagStep, "step", 0, "Rotation step per frame in radians")
	fs.Float64Var(&flagTurns, "turns", 0, "Full revolutions before stopping")
	fs.BoolVar(&flagVertices, "vertices", false, "Draw vertices only")
	fs.StringVar(&flagDepthPolicy, "depth-policy", "", "Points behind the camera: cull, clamp or fail")
	fs.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&flagNoHold, "no-hold", false, "Exit as soon as the animation ends")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagFOV > 0 {
		cfg.Render.FOV = flagFOV
	}
	if flagScale > 0 {
		cfg.Render.ModelScale = flagScale
	}
	if flagStep > 0 {
		cfg.Animation.Step = flagStep
	}
	if flagTurns > 0 {
		cfg.Animation.Turns = flagTurns
	}
	if flagVertices {
		cfg.Animation.Mode = ModeVertices
	}
	if flagDepthPolicy != "" {
		cfg.Render.DepthPolicy = flagDepthPolicy
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
	if flagNoHold {
		cfg.Animation.Hold = false
	}
}

// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Controls ControlsConfig `yaml:"controls"`
	Capture  CaptureConfig  `yaml:"capture"`
	Demo     DemoConfig     `yaml:"demo"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds window placement settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Left   int    `yaml:"left"` // negative means centred
	Top    int    `yaml:"top"`
	VSync  bool   `yaml:"vsync"`
}

// RenderConfig holds the initial render mode.
type RenderConfig struct {
	PointSize       float32    `yaml:"point_size"`
	PointColor      string     `yaml:"point_color"` // default, color, x, y, z
	MeshShade       string     `yaml:"mesh_shade"`  // vertex_color, flat, smooth, wireframe
	MeshColor       [3]float32 `yaml:"mesh_color"`
	BackgroundColor [3]float32 `yaml:"background_color"`
	ColorMap        string     `yaml:"color_map"`
	LightOn         bool       `yaml:"light_on"`
	ShowNormals     bool       `yaml:"show_normals"`
}

// ControlsConfig maps key names to viewer commands.
// Key names are lower-case SDL key names ("escape", "q", "=", "-").
type ControlsConfig struct {
	Bindings map[string]string `yaml:"bindings"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png, bmp
}

// DemoConfig selects the procedural scene shown by the viewer command.
type DemoConfig struct {
	Scene  string `yaml:"scene"` // points, mesh, both
	Points int    `yaml:"points"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultBindings returns the stock key table.
func DefaultBindings() map[string]string {
	return map[string]string{
		"escape":   "quit",
		"q":        "quit",
		"r":        "reset_view",
		"=":        "point_size_up",
		"keypad +": "point_size_up",
		"-":        "point_size_down",
		"keypad -": "point_size_down",
		"c":        "point_color_cycle",
		"0":        "point_color_default",
		"1":        "point_color_color",
		"2":        "point_color_x",
		"3":        "point_color_y",
		"4":        "point_color_z",
		"s":        "mesh_shade_cycle",
		"n":        "toggle_normals",
		"[":        "fov_down",
		"]":        "fov_up",
		"l":        "toggle_light",
		"b":        "toggle_background",
		"o":        "toggle_bbox",
		"p":        "screenshot",
		"w":        "save_config",
		"h":        "help",
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "GeoView",
			Width:  1280,
			Height: 720,
			Left:   -1,
			Top:    -1,
			VSync:  true,
		},
		Render: RenderConfig{
			PointSize:       5,
			PointColor:      "default",
			MeshShade:       "flat",
			MeshColor:       [3]float32{0.5, 0.5, 0.5},
			BackgroundColor: [3]float32{1, 1, 1},
			ColorMap:        "jet",
			LightOn:         true,
		},
		Controls: ControlsConfig{
			Bindings: DefaultBindings(),
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "geoview",
			Format: "png",
		},
		Demo: DemoConfig{
			Scene:  "both",
			Points: 20000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Camera      CameraConfig     `yaml:"camera"`
	Render      RenderConfig     `yaml:"render"`
	Skybox      SkyboxConfig     `yaml:"skybox"`
	Scene       SceneConfig      `yaml:"scene"`
	Logging     LoggingConfig    `yaml:"logging"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera pose and tuning.
type CameraConfig struct {
	Mode        string     `yaml:"mode"` // "fly" or "orbit"
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// ShaderPaths optionally overrides the embedded GLSL sources.
// Empty paths use the built-in shaders.
type ShaderPaths struct {
	ModelVertex   string `yaml:"model_vertex"`
	ModelFragment string `yaml:"model_fragment"`
	LineVertex    string `yaml:"line_vertex"`
	LineFragment  string `yaml:"line_fragment"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	ClearColor [4]float32  `yaml:"clear_color"`
	Grid       bool        `yaml:"grid"`
	GridSize   int         `yaml:"grid_size"`
	Axes       bool        `yaml:"axes"`
	Gizmo      bool        `yaml:"gizmo"`
	Light      LightConfig `yaml:"light"`
	Shaders    ShaderPaths `yaml:"shaders"`
}

// LightConfig places the directional sun in degrees.
type LightConfig struct {
	Azimuth   float32    `yaml:"azimuth"`
	Elevation float32    `yaml:"elevation"`
	Color     [3]float32 `yaml:"color"`
	Ambient   float32    `yaml:"ambient"`
}

// SkyboxConfig lists cubemap faces in +X, -X, +Y, -Y, +Z, -Z order.
type SkyboxConfig struct {
	Enabled bool     `yaml:"enabled"`
	Faces   []string `yaml:"faces"`
}

// ModelConfig describes one model to load at startup.
type ModelConfig struct {
	Path     string     `yaml:"path"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // Euler degrees
	Scale    [3]float32 `yaml:"scale"`    // zero means 1,1,1
	Spin     [3]float32 `yaml:"spin"`     // degrees per second
	Parent   *int       `yaml:"parent,omitempty"`
}

// SceneConfig holds the startup scene.
type SceneConfig struct {
	Models []ModelConfig `yaml:"models"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "modelview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Mode:        "fly",
			Position:    [3]float32{0, 10, 45},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.05,
			FOV:         45,
			Near:        0.1,
			Far:         100,
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
			Grid:       true,
			GridSize:   50,
			Axes:       true,
			Gizmo:      true,
			Light: LightConfig{
				Azimuth:   53,
				Elevation: 63,
				Color:     [3]float32{0.65, 0.65, 0.65},
				Ambient:   0.35,
			},
		},
		Skybox: SkyboxConfig{
			Enabled: true,
			Faces: []string{
				"textures/skybox/right.jpg",
				"textures/skybox/left.jpg",
				"textures/skybox/top.jpg",
				"textures/skybox/bottom.jpg",
				"textures/skybox/front.jpg",
				"textures/skybox/back.jpg",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "modelview",
		},
	}
}

// EffectiveScale returns the configured scale, treating an all-zero vector as unit scale.
func (m ModelConfig) EffectiveScale() [3]float32 {
	if m.Scale == [3]float32{} {
		return [3]float32{1, 1, 1}
	}
	return m.Scale
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Camera matches the classic fly camera setup
	if cfg.Camera.Position != [3]float32{0, 10, 45} {
		t.Errorf("expected camera at (0,10,45), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Yaw != -90 {
		t.Errorf("expected yaw -90, got %f", cfg.Camera.Yaw)
	}
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Mode != "fly" {
		t.Errorf("expected fly camera, got %s", cfg.Camera.Mode)
	}

	if !cfg.Render.Grid || !cfg.Render.Axes || !cfg.Render.Gizmo {
		t.Error("expected grid, axes and gizmo enabled by default")
	}
	if cfg.Render.GridSize != 50 {
		t.Errorf("expected grid size 50, got %d", cfg.Render.GridSize)
	}
	if len(cfg.Skybox.Faces) != 6 {
		t.Errorf("expected 6 skybox faces, got %d", len(cfg.Skybox.Faces))
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  mode: orbit
  speed: 10
  position: [1, 2, 3]

render:
  clear_color: [0.2, 0.3, 0.4, 1]
  grid: false

skybox:
  enabled: false

scene:
  models:
    - path: models/bugatti/bugatti.obj
      scale: [0.5, 0.5, 0.5]
    - path: models/cat/cat.obj
      position: [0, 5, 0]
      spin: [0, 20, 0]
      parent: 0

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	// Untouched keys keep their defaults
	if cfg.Window.Title != "modelview" {
		t.Errorf("expected default title, got %s", cfg.Window.Title)
	}

	if cfg.Camera.Mode != "orbit" {
		t.Errorf("expected orbit camera, got %s", cfg.Camera.Mode)
	}
	if cfg.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("expected position (1,2,3), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Sensitivity != 0.05 {
		t.Errorf("expected default sensitivity, got %f", cfg.Camera.Sensitivity)
	}

	if cfg.Render.Grid {
		t.Error("expected grid to be disabled")
	}
	if !cfg.Render.Axes {
		t.Error("expected axes to stay enabled")
	}
	if cfg.Render.ClearColor != [4]float32{0.2, 0.3, 0.4, 1} {
		t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
	}

	if len(cfg.Scene.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(cfg.Scene.Models))
	}
	cat := cfg.Scene.Models[1]
	if cat.Parent == nil || *cat.Parent != 0 {
		t.Errorf("expected cat parent 0, got %v", cat.Parent)
	}
	if cat.Spin != [3]float32{0, 20, 0} {
		t.Errorf("unexpected spin %v", cat.Spin)
	}
	if cat.EffectiveScale() != [3]float32{1, 1, 1} {
		t.Errorf("expected unit scale for omitted scale, got %v", cat.EffectiveScale())
	}
	if cfg.Scene.Models[0].EffectiveScale() != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("unexpected scale %v", cfg.Scene.Models[0].EffectiveScale())
	}
	if cfg.Scene.Models[0].Parent != nil {
		t.Error("expected first model to have no parent")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	parent := func(i int) *int { return &i }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "zero width", mutate: func(c *Config) { c.Window.Width = 0 }, wantErr: "window size"},
		{name: "bad camera", mutate: func(c *Config) { c.Camera.Mode = "chase" }, wantErr: "camera mode"},
		{name: "light below nadir", mutate: func(c *Config) { c.Render.Light.Elevation = -120 }, wantErr: "invalid light"},
		{name: "ambient over one", mutate: func(c *Config) { c.Render.Light.Ambient = 1.5 }, wantErr: "invalid light"},
		{name: "short skybox", mutate: func(c *Config) { c.Skybox.Faces = c.Skybox.Faces[:3] }, wantErr: "6 faces"},
		{name: "short skybox disabled", mutate: func(c *Config) {
			c.Skybox.Enabled = false
			c.Skybox.Faces = nil
		}},
		{name: "empty model path", mutate: func(c *Config) {
			c.Scene.Models = []ModelConfig{{}}
		}, wantErr: "empty path"},
		{name: "self parent", mutate: func(c *Config) {
			c.Scene.Models = []ModelConfig{{Path: "a.obj", Parent: parent(0)}}
		}, wantErr: "invalid parent"},
		{name: "parent out of range", mutate: func(c *Config) {
			c.Scene.Models = []ModelConfig{{Path: "a.obj", Parent: parent(3)}}
		}, wantErr: "invalid parent"},
		{name: "valid parent", mutate: func(c *Config) {
			c.Scene.Models = []ModelConfig{{Path: "a.obj"}, {Path: "b.obj", Parent: parent(0)}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
	if filepath.Base(dir) != "modelview" {
		t.Errorf("expected modelview dir, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "camera flag",
			setup: func() { *flagCamera = "orbit" },
			verify: func(cfg *Config) {
				if cfg.Camera.Mode != "orbit" {
					t.Errorf("expected orbit camera, got %s", cfg.Camera.Mode)
				}
			},
			teardown: func() { *flagCamera = "" },
		},
		{
			name:  "no skybox flag",
			setup: func() { *flagNoSkybox = true },
			verify: func(cfg *Config) {
				if cfg.Skybox.Enabled {
					t.Error("expected skybox disabled")
				}
			},
			teardown: func() { *flagNoSkybox = false },
		},
		{
			name: "repeated model flag",
			setup: func() {
				_ = flagModels.Set("a.obj")
				_ = flagModels.Set("b.gltf")
			},
			verify: func(cfg *Config) {
				if len(cfg.Scene.Models) != 2 {
					t.Fatalf("expected 2 models, got %d", len(cfg.Scene.Models))
				}
				if cfg.Scene.Models[1].Path != "b.gltf" {
					t.Errorf("expected b.gltf second, got %s", cfg.Scene.Models[1].Path)
				}
				if flagModels.String() != "a.obj,b.gltf" {
					t.Errorf("unexpected flag string %q", flagModels.String())
				}
			},
			teardown: func() { flagModels = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
scene:
  models:
    - path: from_file.obj
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	_ = flagModels.Set("from_flag.obj")
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		flagModels = nil
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, not file
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	// Height from file since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
	// Title from defaults
	if cfg.Window.Title != "modelview" {
		t.Errorf("expected default title, got %s", cfg.Window.Title)
	}
	// Flag models append after file models
	if len(cfg.Scene.Models) != 2 || cfg.Scene.Models[1].Path != "from_flag.obj" {
		t.Errorf("unexpected models %+v", cfg.Scene.Models)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Scene.Models = []ModelConfig{{Path: "cat.obj", Scale: [3]float32{2, 2, 2}}}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("expected width 1024 after reload, got %d", loaded.Window.Width)
	}
	if len(loaded.Scene.Models) != 1 || loaded.Scene.Models[0].Path != "cat.obj" {
		t.Errorf("unexpected models after reload %+v", loaded.Scene.Models)
	}
}

func TestSavePath(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "viewer.yaml")
	old := *flagConfig
	*flagConfig = explicit
	defer func() { *flagConfig = old }()

	if got := SavePath(); got != explicit {
		t.Errorf("SavePath() = %q, want the --config path %q", got, explicit)
	}

	cfg := Default()
	cfg.Camera.Yaw = 12
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded := Default()
	if err := loadFromFile(loaded, explicit); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Camera.Yaw != 12 {
		t.Errorf("yaw after reload = %v, want 12", loaded.Camera.Yaw)
	}
}

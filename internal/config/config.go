package config

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed default/config.toml
var configFS embed.FS

// Buffer capacity bounds, in bytes.
const (
	MinBufferSize = 64 << 10
	MaxBufferSize = 64 << 20
)

// Config is the demo's configuration.
type Config struct {
	Window   Window   `toml:"window"`
	Renderer Renderer `toml:"renderer"`
	Log      Log      `toml:"log"`
}

// Window holds window and frame pacing settings.
type Window struct {
	Title    string `toml:"title"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	VSync    bool   `toml:"vsync"`
	FPSLimit int    `toml:"fps_limit"` // 0 = unlimited
}

// Renderer holds the UI renderer settings.
type Renderer struct {
	VertexBufferSize int     `toml:"vertex_buffer_size"`
	IndexBufferSize  int     `toml:"index_buffer_size"`
	FontSize         float64 `toml:"font_size"`
}

// Log holds the log level: debug, info, warn or error.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	data, err := configFS.ReadFile("default/config.toml")
	if err != nil {
		panic(fmt.Sprintf("config: no embedded default: %v", err))
	}
	c := &Config{}
	if err := c.Load(string(data)); err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	return c
}

// LoadFile returns the defaults overlaid with the TOML file at path.
// An empty path returns the defaults.
func LoadFile(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := c.Load(string(data)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load decodes data over c and clamps the result. Keys that map to no
// field are an error, so typos do not pass silently.
func (c *Config) Load(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	c.clamp()
	return nil
}

func (c *Config) clamp() {
	c.Window.Width = max(c.Window.Width, 1)
	c.Window.Height = max(c.Window.Height, 1)
	c.Window.FPSLimit = clamp(c.Window.FPSLimit, 0, 1000)
	c.Renderer.VertexBufferSize = clamp(c.Renderer.VertexBufferSize, MinBufferSize, MaxBufferSize)
	c.Renderer.IndexBufferSize = clamp(c.Renderer.IndexBufferSize, MinBufferSize, MaxBufferSize)
	c.Renderer.FontSize = clamp(c.Renderer.FontSize, 6, 96)
}

func clamp[T int | float64](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

package config

import "sort"

// Presets are partial configurations applied over the defaults. Zero
// fields keep the default.
var Presets = map[string]*Config{
	"quick": {
		Steps:  20,
		Render: RenderCfg{Width: 960, Height: 540},
		Anim:   AnimCfg{GIFFPS: 8},
	},
	"standard": {
		Steps: DefaultSteps,
	},
	"smooth": {
		Steps:  200,
		Easing: "cubic",
		Anim:   AnimCfg{GIFFPS: 20, MP4FPS: 30},
	},
	"hd": {
		Steps:  150,
		Render: RenderCfg{Width: 1920, Height: 1080},
		Anim:   AnimCfg{GIFScale: 0.4, MP4FPS: 30},
	},
	"showcase3d": {
		Mode:   "3d",
		Steps:  120,
		Ease3D: "cubic",
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset copies the non-zero fields of p onto c.
func (c *Config) ApplyPreset(p *Config) {
	if p == nil {
		return
	}
	if p.Mode != "" {
		c.Mode = p.Mode
	}
	if p.Steps != 0 {
		c.Steps = p.Steps
	}
	if p.Output != "" {
		c.Output = p.Output
	}
	if p.Easing != "" {
		c.Easing = p.Easing
	}
	if p.Ease3D != "" {
		c.Ease3D = p.Ease3D
	}
	if p.Seed != 0 {
		c.Seed = p.Seed
	}
	if p.Render.Width != 0 {
		c.Render.Width = p.Render.Width
	}
	if p.Render.Height != 0 {
		c.Render.Height = p.Render.Height
	}
	if p.Render.SVG {
		c.Render.SVG = true
	}
	if p.Anim.GIFFPS != 0 {
		c.Anim.GIFFPS = p.Anim.GIFFPS
	}
	if p.Anim.GIFScale != 0 {
		c.Anim.GIFScale = p.Anim.GIFScale
	}
	if p.Anim.MP4FPS != 0 {
		c.Anim.MP4FPS = p.Anim.MP4FPS
	}
	if p.Anim.FFmpeg != "" {
		c.Anim.FFmpeg = p.Anim.FFmpeg
	}
}

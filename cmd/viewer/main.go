package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"glviewer/app"
	"glviewer/core"
	"glviewer/internal/opengl"
	"glviewer/platform"
	"glviewer/renderer"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "TOML configuration file")
	cameraMode := pflag.String("camera", "", `camera mode override: "fps" or "ray"`)
	logLevel := pflag.String("log-level", "", "log level override: debug, info, warn, error")
	pflag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal("load config: %v", err)
	}
	if *cameraMode != "" {
		cfg.SetCameraMode(core.CameraMode(*cameraMode))
		if err := cfg.Validate(); err != nil {
			core.LogFatal("%v", err)
		}
	}
	level := cfg.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}
	if err := core.SetLogLevel(level); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", level, err)
		os.Exit(2)
	}

	plat, err := platform.Init()
	if err != nil {
		core.LogFatal("%v", err)
	}
	defer plat.Terminate()

	a := app.New(cfg, plat, func(vp core.Viewport) (app.Renderer, error) {
		dev, err := opengl.NewDevice()
		if err != nil {
			return nil, err
		}
		info := dev.Info()
		core.LogInfo("running on %s (%s)", info.Renderer, info.Vendor)
		core.LogInfo("OpenGL version %s, GLSL %s", info.Version, info.GLSL)
		return renderer.New(dev, cfg, vp)
	})
	if err := a.Run(); err != nil {
		core.LogError("%v", err)
		plat.Terminate()
		os.Exit(1)
	}
}

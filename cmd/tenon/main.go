// Command tenon evaluates a scene definition script, resolves every
// element into packed mesh buffers, and exports the result as glTF or
// DXF.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chazu/tenon/pkg/config"
	"github.com/chazu/tenon/pkg/csg"
	"github.com/chazu/tenon/pkg/engine"
	exportdxf "github.com/chazu/tenon/pkg/export/dxf"
	exportgltf "github.com/chazu/tenon/pkg/export/gltf"
	"github.com/chazu/tenon/pkg/logger"
	"github.com/chazu/tenon/pkg/resolve"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		script     = flag.String("script", "", "scene script (overrides config)")
		output     = flag.String("out", "", "output file, .gltf/.glb/.dxf (overrides config)")
		cells      = flag.Int("cells", 0, "marching cubes resolution (overrides config)")
		recompute  = flag.Bool("recompute", false, "force geometry cache recomputation")
		logLevel   = flag.String("log-level", "", "debug, info, warn, or error (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *script != "" {
		cfg.Script = *script
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *cells > 0 {
		cfg.MeshCells = *cells
	}
	if *recompute {
		cfg.Recompute = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger.Init(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("export failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.Script == "" {
		return fmt.Errorf("no scene script given (use -script or the config file)")
	}

	source, err := os.ReadFile(cfg.Script)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	scene, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", cfg.Script, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			logger.Log.Error("script error", zap.String("script", cfg.Script), zap.String("error", e.Error()))
		}
		return fmt.Errorf("%d script error(s)", len(evalErrs))
	}
	logger.Log.Info("scene evaluated",
		zap.String("script", cfg.Script),
		zap.Int("elements", len(scene.Elements)))

	resolver := resolve.New(csg.NewWithCells(cfg.MeshCells), resolve.WithLogger(logger.Log))

	var results []resolve.Result
	for _, el := range scene.Elements {
		start := time.Now()
		res, err := resolver.Resolve(el, cfg.Recompute)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", el.Name(), err)
		}
		if res.Empty() {
			logger.Log.Warn("element produced no geometry", zap.String("element", el.Name()))
			continue
		}
		verts := 0
		tris := 0
		for _, b := range res.Buffers {
			verts += b.VertexCount()
			tris += b.TriangleCount()
		}
		logger.Log.Info("element resolved",
			zap.String("element", el.Name()),
			zap.Int("vertices", verts),
			zap.Int("triangles", tris),
			zap.Duration("took", time.Since(start)))
		results = append(results, res)
	}
	if len(results) == 0 {
		return fmt.Errorf("scene produced no geometry")
	}

	switch ext := strings.ToLower(filepath.Ext(cfg.Output)); ext {
	case ".gltf", ".glb":
		err = exportgltf.Save(cfg.Output, results)
	case ".dxf":
		err = exportdxf.Save(cfg.Output, results)
	default:
		err = fmt.Errorf("unsupported output format %q", ext)
	}
	if err != nil {
		return err
	}

	logger.Log.Info("exported", zap.String("output", cfg.Output), zap.Int("elements", len(results)))
	return nil
}

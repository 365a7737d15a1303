// wirespin renders a mesh as a rotating wireframe in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/wirespin/internal/animation"
	"github.com/Faultbox/wirespin/internal/config"
	"github.com/Faultbox/wirespin/internal/logger"
	"github.com/Faultbox/wirespin/internal/render"
	"github.com/Faultbox/wirespin/internal/terminal"
	"github.com/Faultbox/wirespin/pkg/formats"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wirespin <model.obj|model.glb>",
		Short: "Spin a mesh as a terminal wireframe",
		Long: `wirespin - terminal wireframe spinner

Loads an OBJ or glTF mesh and rotates it about the vertical axis,
drawing every face outline with anti-aliased character lines.

Keys:
  Esc, q, Ctrl-C  Quit`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0])
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newInfoCmd(), newConfigCmd())
	return root
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.obj|model.glb>",
		Short: "Display mesh information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return printInfo(cmd, args[0], cfg)
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "save [path]",
		Short: "Write the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			if err := cfg.SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	})
	return cmd
}

func printInfo(cmd *cobra.Command, path string, cfg *config.Config) error {
	model, err := formats.Load(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	mesh, err := render.NewMesh(model.Vertices, model.Faces)
	if err != nil {
		return fmt.Errorf("build mesh: %w", err)
	}

	w := cmd.OutOrStdout()
	lo, hi := model.Bounds()
	size := hi.Sub(lo)
	ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))

	fmt.Fprintf(w, "File:       %s\n", filepath.Base(path))
	fmt.Fprintf(w, "Format:     %s\n", ext)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Vertices:   %d\n", mesh.VertexCount())
	fmt.Fprintf(w, "Faces:      %d\n", mesh.FaceCount())
	fmt.Fprintf(w, "Edges:      %d per frame\n", mesh.EdgeCount())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Bounds Min: (%.3f, %.3f, %.3f)\n", lo.X, lo.Y, lo.Z)
	fmt.Fprintf(w, "Bounds Max: (%.3f, %.3f, %.3f)\n", hi.X, hi.Y, hi.Z)
	fmt.Fprintf(w, "Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)

	// Anything this deep is behind the camera once scaled.
	if nearest := lo.Z * cfg.Render.ModelScale; nearest+cfg.Render.FOV <= 0 {
		fmt.Fprintf(w, "Warning:    scaled z reaches %.1f, behind the camera at fov %.0f (policy %s)\n",
			nearest, cfg.Render.FOV, cfg.Render.DepthPolicy)
	}
	return nil
}

func run(parent context.Context, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The screen belongs to the renderer, so logs only go to the file.
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, false); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("=== wirespin ===", zap.String("model", path))
	logger.Sugar.Debugf("Config: %+v", cfg)

	model, err := formats.Load(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	model.Scale(cfg.Render.ModelScale)

	mesh, err := render.NewMesh(model.Vertices, model.Faces)
	if err != nil {
		return fmt.Errorf("build mesh: %w", err)
	}

	policy, err := render.ParseDepthPolicy(cfg.Render.DepthPolicy)
	if err != nil {
		return err
	}
	proj, err := render.NewProjector(cfg.Render.FOV, policy)
	if err != nil {
		return err
	}

	mode := animation.ModeFaces
	if cfg.Animation.Mode == config.ModeVertices {
		mode = animation.ModeVertices
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen, err := terminal.Open()
	if err != nil {
		return err
	}
	defer screen.Close()
	screen.Watch(cancel)

	renderer := render.NewRenderer(proj, render.NewRasterizer(screen, screen.Viewport(), cfg.Render.Glyphs()))
	loop, err := animation.New(animation.Config{
		Step:       cfg.Animation.Step,
		Limit:      cfg.Animation.Limit(),
		Budget:     cfg.Animation.Budget(),
		Mode:       mode,
		ShowStatus: cfg.Animation.ShowStatus,
	}, mesh, screen, renderer, animation.SystemClock())
	if err != nil {
		return err
	}

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}

	if cfg.Animation.Hold {
		if err := screen.WaitKey(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

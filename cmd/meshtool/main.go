// meshtool builds mesh description documents into OBJ files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/config"
	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/internal/watch"
	"github.com/Faultbox/meshkit/pkg/meshbuild"
	"github.com/Faultbox/meshkit/pkg/meshfile"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Debug("config loaded",
		zap.String("path", config.ConfigPath()),
		zap.Int("capacity", cfg.Builder.Capacity),
		zap.Bool("validate", cfg.Builder.Validate))

	s := newSession(cfg)

	command := args[0]
	rest := args[1:]

	switch command {
	case "build", "b":
		err = s.cmdBuild(rest)
	case "info", "i":
		err = s.cmdInfo(rest)
	case "validate", "check":
		err = s.cmdValidate(rest)
	case "watch", "w":
		err = s.cmdWatch(rest)
	case "config", "cfg":
		err = s.cmdConfig(rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		logger.Error("unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Fatal("command failed", zap.String("command", command), zap.Error(err))
	}
}

func printUsage() {
	fmt.Println(`meshtool - procedural mesh builder

Usage:
  meshtool [flags] <command> [options]

Commands:
  build <doc> [-o out.obj]    Build a mesh document and export OBJ + MTL
  info <doc>                  Show vertex, triangle and submesh statistics
  validate <doc>              Check every triangle index against the vertices
  watch <doc> [-o out.obj]    Rebuild whenever the document changes
  config [-o path]            Write the effective config (default: user config dir)

Documents are YAML (.yaml, .yml) or TOML (.toml).

Flags:
  -config <path>   Config file (default ./meshtool.yaml or user config dir)
  -debug           Debug logging
  -capacity <n>    Vertex capacity per mesh
  -normals         Recalculate normals on finalize
  -tangents        Compute tangents on finalize
  -no-validate     Skip index validation
  -out-dir <dir>   Output directory

Examples:
  meshtool build spiral.yaml
  meshtool -normals build checker.toml -o out/checker.obj
  meshtool watch spiral.yaml`)
}

// session owns the one builder reused by every build in this process.
type session struct {
	cfg     *config.Config
	builder *meshbuild.Builder
	log     *zap.Logger
}

func newSession(cfg *config.Config) *session {
	return &session{
		cfg:     cfg,
		builder: meshbuild.NewWithCapacity(cfg.Builder.Capacity),
		log:     logger.Named("meshtool"),
	}
}

// build loads a document, replays it into the builder and finalizes it.
func (s *session) build(path string) (*meshfile.Document, *meshbuild.MeshData, error) {
	doc, err := meshfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Build(s.builder); err != nil {
		return nil, nil, fmt.Errorf("building %s: %w", doc.Name, err)
	}

	m, err := s.builder.Finalize(s.cfg.FinalizeOptions(doc.Name))
	if err != nil {
		return nil, nil, fmt.Errorf("finalizing %s: %w", doc.Name, err)
	}

	s.log.Debug("finalized", logger.MeshFields(m.Name, m.VertexCount(), m.TriangleCount(), m.SubmeshCount())...)
	return doc, m, nil
}

// outputPath returns the explicit path or <out-dir>/<doc base>.obj.
func (s *session) outputPath(docPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return filepath.Join(s.cfg.Output.Dir, base+".obj")
}

func (s *session) export(docPath, explicit string) error {
	doc, m, err := s.build(docPath)
	if err != nil {
		return err
	}

	out := s.outputPath(docPath, explicit)
	if err := meshfile.SaveOBJ(out, m, doc.MaterialName); err != nil {
		return err
	}

	s.log.Info("wrote mesh", append(logger.MeshFields(m.Name, m.VertexCount(), m.TriangleCount(), m.SubmeshCount()),
		zap.String("output", out))...)
	return nil
}

func (s *session) cmdBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output OBJ path")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: meshtool build <doc> [-o out.obj]")
	}
	return s.export(fs.Arg(0), *output)
}

func (s *session) cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool info <doc>")
	}

	doc, m, err := s.build(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Mesh:      %s\n", m.Name)
	fmt.Printf("Vertices:  %d / %d\n", m.VertexCount(), s.builder.Capacity())
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Indices:   %s\n", m.IndexFormat())
	fmt.Printf("Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
		m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z,
		m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
	fmt.Println()
	fmt.Println("Submeshes:")
	for i, r := range m.Ranges() {
		fmt.Printf("  %-3d %-20s %d triangles\n", i, doc.MaterialName(i), r.Count/3)
	}
	return nil
}

func (s *session) cmdValidate(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool validate <doc>")
	}

	doc, err := meshfile.Load(args[0])
	if err != nil {
		return err
	}
	if err := doc.Build(s.builder); err != nil {
		return err
	}

	if err := s.builder.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			logger.Warn("invalid index", zap.String("mesh", doc.Name), zap.String("detail", line))
		}
		return fmt.Errorf("%s: %w", doc.Name, meshbuild.ErrIndexOutOfRange)
	}

	fmt.Printf("%s: ok (%d vertices, %d triangles)\n", doc.Name, s.builder.VertexCount(), s.builder.TriangleCount())
	return nil
}

func (s *session) cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	output := fs.String("o", "", "Output OBJ path")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: meshtool watch <doc> [-o out.obj]")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := watch.New(fs.Arg(0), s.cfg.DebounceOrDefault(), func(path string) error {
		return s.export(path, *output)
	}, logger.Named("watch"))

	s.log.Info("watching", zap.String("path", fs.Arg(0)))
	return w.Run(ctx)
}

func (s *session) cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("o", "", "Config output path")
	fs.Parse(args)

	path := *output
	var err error
	if path == "" {
		path = config.UserConfigPath()
		err = s.cfg.Save()
	} else {
		err = s.cfg.SaveTo(path)
	}
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	logger.Info("config saved", zap.String("path", path))
	return nil
}

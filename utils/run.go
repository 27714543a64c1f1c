package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/render"
	"github.com/voxelsplace/voxview/vox"
)

// RenderJob describes one render from file to file.
type RenderJob struct {
	In, Out string
	Palette vox.Palette
	Script  string
	HUD     bool
	Options []render.Option
}

// RunRender loads job.In, renders it and writes job.Out in the format its
// extension names.
func RunRender(job RenderJob) (render.Stats, error) {
	data, err := os.ReadFile(job.In)
	if err != nil {
		return render.Stats{}, err
	}
	s, err := api.LoadShape(data, job.Palette, job.Script)
	if err != nil {
		return render.Stats{}, fmt.Errorf("%s: %w", job.In, err)
	}
	ext := filepath.Ext(job.Out)
	if ext == "" {
		return render.Stats{}, fmt.Errorf("%w: %s has no extension", render.ErrUnsupportedFormat, job.Out)
	}
	out, st, err := api.RenderShape(s, api.RenderConfig{Format: ext, HUD: job.HUD, Options: job.Options})
	if err != nil {
		return st, err
	}
	return st, os.WriteFile(job.Out, out, 0o644)
}

// RunInfo prints a description of the shape in inPath to w.
func RunInfo(w io.Writer, inPath string, p vox.Palette) error {
	s, err := vox.LoadShapeFile(inPath, p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, api.Info(s))
	return err
}

// RunShape2GLB converts one or more shapes into a .glb with one node each.
// Every shape gets the default placement plus script.
func RunShape2GLB(inPaths []string, outPath string, p vox.Palette, script string) error {
	shapes := make([]api.NamedShape, 0, len(inPaths))
	for _, in := range inPaths {
		data, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		s, err := api.LoadShape(data, p, script)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		shapes = append(shapes, api.NamedShape{Name: name, Shape: s})
	}
	doc, err := api.BuildGLTF(shapes)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, outPath)
}

// RunCompile writes the snapshot of inPath to outPath.
func RunCompile(inPath, outPath string, p vox.Palette) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	snap, err := api.Compile(data, p)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	return os.WriteFile(outPath, snap, 0o644)
}

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nova-forge/poftools/pkg/pof"
	"github.com/nova-forge/poftools/pkg/scene"
)

// Phase identifies a pipeline stage for progress reporting.
type Phase int

// Pipeline phases, in execution order.
const (
	PhaseRead Phase = iota
	PhaseParse
	PhaseAssemble
	PhaseWrite
	PhaseDone
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRead:
		return "read"
	case PhaseParse:
		return "parse"
	case PhaseAssemble:
		return "assemble"
	case PhaseWrite:
		return "write"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options configures a Converter.
type Options struct {
	OutputDir string
	// Progress, when set, is called at each phase boundary. Calls are
	// coarse-grained: one per phase, not per chunk.
	Progress func(model string, phase Phase)
	Logger   *zap.Logger
}

// Result is the outcome of one successful conversion. Warnings merge
// decode and assembly warnings; a non-empty list means the output is
// best-effort rather than byte-faithful.
type Result struct {
	Name         string
	Model        *pof.Model
	Scene        *scene.Scene
	Warnings     []pof.Warning
	OBJPath      string
	MTLPath      string
	ManifestPath string
}

// Converter drives the pipeline for one source. It is safe for
// concurrent use: each Convert call operates on its own buffers.
type Converter struct {
	src  Source
	opts Options
	log  *zap.Logger
}

// New creates a Converter over a source.
func New(src Source, opts Options) *Converter {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &Converter{src: src, opts: opts, log: log}
}

func (c *Converter) progress(model string, phase Phase) {
	if c.opts.Progress != nil {
		c.opts.Progress(model, phase)
	}
}

// Convert runs the full pipeline for one model path. Fatal decode or
// output errors abort this conversion only and are returned; the
// caller always gets either an error or a complete Result, never a
// silently empty artifact.
func (c *Converter) Convert(name string) (*Result, error) {
	c.progress(name, PhaseRead)
	data, err := c.src.Read(name)
	if err != nil {
		return nil, err
	}

	c.progress(name, PhaseParse)
	model, err := pof.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	c.progress(name, PhaseAssemble)
	s := scene.Assemble(model)

	warnings := make([]pof.Warning, 0, len(model.Warnings)+len(s.Warnings))
	warnings = append(warnings, model.Warnings...)
	warnings = append(warnings, s.Warnings...)
	for _, w := range warnings {
		c.log.Warn("conversion warning", zap.String("model", name), zap.Stringer("kind", w.Kind), zap.String("detail", w.Detail))
	}

	c.progress(name, PhaseWrite)
	result := &Result{
		Name:     name,
		Model:    model,
		Scene:    s,
		Warnings: warnings,
	}
	if err := c.writeArtifacts(result); err != nil {
		return nil, err
	}

	c.progress(name, PhaseDone)
	c.log.Info("converted model",
		zap.String("model", name),
		zap.Int("submodels", len(model.SubModels)),
		zap.Int("triangles", s.TriangleCount()),
		zap.Int("warnings", len(warnings)))
	return result, nil
}

func (c *Converter) writeArtifacts(r *Result) error {
	base := strings.TrimSuffix(filepath.Base(r.Name), filepath.Ext(r.Name))
	if base == "" {
		base = "model"
	}
	if err := os.MkdirAll(c.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	r.OBJPath = filepath.Join(c.opts.OutputDir, base+".obj")
	r.MTLPath = filepath.Join(c.opts.OutputDir, base+".mtl")
	r.ManifestPath = filepath.Join(c.opts.OutputDir, base+".manifest.txt")

	mtlName := ""
	if len(r.Scene.Textures) > 0 {
		mtlName = base + ".mtl"
	}

	objFile, err := os.Create(r.OBJPath)
	if err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	if err := scene.WriteOBJ(objFile, r.Scene, mtlName); err != nil {
		objFile.Close()
		return fmt.Errorf("writing OBJ: %w", err)
	}
	if err := objFile.Close(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}

	if mtlName != "" {
		mtlFile, err := os.Create(r.MTLPath)
		if err != nil {
			return fmt.Errorf("writing MTL: %w", err)
		}
		if err := scene.WriteMTL(mtlFile, r.Scene); err != nil {
			mtlFile.Close()
			return fmt.Errorf("writing MTL: %w", err)
		}
		if err := mtlFile.Close(); err != nil {
			return fmt.Errorf("writing MTL: %w", err)
		}
	} else {
		r.MTLPath = ""
	}

	manifest, err := os.Create(r.ManifestPath)
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := WriteManifest(manifest, r); err != nil {
		manifest.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := manifest.Close(); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return nil
}

package convert

import (
	"fmt"
	"io"
	"sort"
)

// WriteManifest writes the plain-text conversion manifest. Every count
// is taken directly from the decoded document's slices so the manifest
// always matches the in-memory result exactly.
func WriteManifest(w io.Writer, r *Result) error {
	model := r.Model

	line := func(label string, format string, args ...any) error {
		_, err := fmt.Fprintf(w, "%-16s %s\n", label+":", fmt.Sprintf(format, args...))
		return err
	}

	if err := line("source", "%s", r.Name); err != nil {
		return err
	}
	if err := line("version", "%d", model.Version); err != nil {
		return err
	}
	if err := line("radius", "%.3f", model.Header.Radius); err != nil {
		return err
	}
	if err := line("mass", "%.3f", model.Header.Mass); err != nil {
		return err
	}
	if err := line("submodels", "%d", len(model.SubModels)); err != nil {
		return err
	}
	if err := line("textures", "%d", len(model.Textures)); err != nil {
		return err
	}
	if err := line("triangles", "%d", r.Scene.TriangleCount()); err != nil {
		return err
	}

	hardpoints := []struct {
		label string
		count int
	}{
		{"gun points", len(model.GunPoints)},
		{"missile points", len(model.MissilePoints)},
		{"thrusters", len(model.ThrusterPoints)},
		{"dock points", len(model.DockPoints)},
		{"glow points", len(model.GlowPoints)},
		{"eye points", len(model.EyePoints)},
		{"special points", len(model.SpecialPoints)},
	}
	for _, h := range hardpoints {
		if err := line(h.label, "%d", h.count); err != nil {
			return err
		}
	}

	if len(model.SkippedChunks) > 0 {
		tags := make([]string, 0, len(model.SkippedChunks))
		for tag := range model.SkippedChunks {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for i, tag := range tags {
			tags[i] = fmt.Sprintf("%s(%d)", tag, model.SkippedChunks[tag])
		}
		if err := line("skipped chunks", "%v", tags); err != nil {
			return err
		}
	}

	if err := line("warnings", "%d", len(r.Warnings)); err != nil {
		return err
	}
	for _, warn := range r.Warnings {
		if _, err := fmt.Fprintf(w, "  - %s\n", warn); err != nil {
			return err
		}
	}

	return nil
}

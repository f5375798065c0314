// Package illusion renders a phrase into a circular anamorphic image: the
// text is illegible head-on and resolves only when the print is viewed at a
// grazing angle. The pipeline is deterministic and CPU-only; given the same
// Config and GlyphEngine it produces bit-identical output.
package illusion

import "image"

// Pipeline wires the five rendering stages together: font-size solving,
// circular distortion, rotational stamping and background flattening, with
// the GlyphEngine as the measurement and drawing oracle.
type Pipeline struct {
	Engine GlyphEngine
	Logger Logger

	// OutputAlpha keeps an (opaque) alpha channel on the final image so the
	// caller can hand it to an alpha-capable codec.
	OutputAlpha bool
}

// NewPipeline builds a Pipeline with the freetype engine resolved from cfg.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := NewFreetype(cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Engine: engine}, nil
}

// Render runs the whole pipeline for cfg and returns the final flattened
// image of side cfg.Side. Each stage passes its buffer to the next by value;
// no stage retains state between runs.
func (p *Pipeline) Render(cfg Config) (image.Image, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	text := cfg.effectiveText(p.Logger)

	size, box, err := SolveFontSize(p.Engine, cfg, text)
	if err != nil {
		return nil, err
	}
	if p.Logger != nil {
		p.Logger.Infof("solver", "fitted %q at %dpt, ink box %v", text, size, box)
	}

	raster, _, err := p.Engine.Rasterize(text, size)
	if err != nil {
		return nil, err
	}
	distorted, err := Distort(raster, box, cfg)
	if err != nil {
		return nil, err
	}
	acc := Stamp(distorted, cfg.Rotations)
	return Flatten(acc, cfg.BackgroundColor, p.OutputAlpha), nil
}

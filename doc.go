// Package fractal renders escape-time and root-convergence fractals on the
// CPU.
//
// # Overview
//
// A render is described by a Job: a fractal Kind with its parameters, a
// Palette, a Viewport mapping pixels onto the complex plane, and an
// iteration limit. An Engine splits the image into bands of rows, computes
// the bands on a persistent pool of workers and returns a complete Image.
// Partially rendered images are never returned: a job either completes or
// reports why it did not.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fractal"
//	    "github.com/gogpu/fractal/export"
//	    "github.com/gogpu/fractal/formula"
//	    "github.com/gogpu/fractal/palette"
//	)
//
//	kind, _ := formula.NewRegistry().Create("julia")
//	pal, _ := palette.NewRegistry().Get("sunset")
//	vp, _ := fractal.NewViewport(kind.DefaultBounds(), 800, 600)
//	vp, _ = vp.FitAspect()
//
//	job, err := fractal.NewJob(fractal.JobConfig{
//	    Kind: kind, Palette: pal, Viewport: vp, MaxIter: 256,
//	})
//	if err != nil {
//	    return err
//	}
//
//	engine := fractal.NewEngine()
//	defer engine.Close()
//
//	img, err := engine.Submit(ctx, job)
//	if err != nil {
//	    return err
//	}
//	export.Save("julia.png", img, nil)
//
// # Architecture
//
// The module is organized into:
//   - fractal: Kind and Palette contracts, registries, Viewport, Job,
//     Engine, Image, errors, logging
//   - formula: the built-in fractal kinds
//   - palette: the built-in palettes and the shared HSV conversion
//   - history: undo/redo of navigation states per kind
//   - export: PNG, JPEG, BMP and TIFF output, thumbnails
//
// # Coordinate System
//
// Pixel (0, 0) is the top-left corner and maps to (XMin, YMax):
//   - X grows to the right along the real axis
//   - pixel rows grow downward while the imaginary axis grows upward
//
// # Cancellation
//
// Submit blocks until its job finishes. Submitting a newer job to the same
// engine cancels the older one, which then returns a *CancelError matching
// ErrJobCancelled and ErrJobSuperseded. Cancelling the context passed to
// Submit has the same effect with the context's cause.
package fractal

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

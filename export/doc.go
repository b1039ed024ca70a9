// Package export writes rendered images to files.
//
// Any image.Image works, including *fractal.Image. PNG and JPEG use the
// standard library encoders; BMP and TIFF come from golang.org/x/image.
//
//	img, err := engine.Submit(ctx, job)
//	if err != nil {
//	    return err
//	}
//	if err := export.Save("mandelbrot.png", img, nil); err != nil {
//	    return err
//	}
package export

// Package canvas provides resolution-independent 2D drawing on top of a
// pluggable raster Context.
//
// Draw code is written against a Frame, which maps a fixed reference size
// (400 units by default) onto the actual surface so every length scales
// uniformly with the smaller surface edge:
//
//	host := canvas.NewHost(canvas.Options{
//		AspectRatio: canvas.Square,
//		OnDraw: func(ctx canvas.Context, f *canvas.Frame) {
//			ctx.SetFillColor(f.Label())
//			f.Circle(f.CenterX(), f.CenterY(), f.Radius(50), true)
//		},
//	}, canvas.WithTheme(theme))
//
// A Host owns one surface. It fits the surface to its container with an
// AspectPolicy, repaints the theme background before every draw, follows a
// ThemeObserver, and optionally drives a continuous animation through a
// FrameScheduler.
package canvas

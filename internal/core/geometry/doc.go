// Package geometry maps between screen space and document space.
//
// Screen space is the coordinate system of the input surface: y grows
// downwards and is affected by zoom and scrolling. Document space is
// relative to a page's unscaled top-left corner and is independent of zoom.
//
// Rectangles use seehuhn.de/go/geom/rect with LLx/LLy as the top-left
// (minimum) corner and URx/URy as the bottom-right (maximum) corner.
//
// Everything here is a pure function.
package geometry

// Package scene builds entity meshes and projects them into screen space.
//
// A [Library] generates one archetype mesh per entity kind and size and
// memoizes it for the lifetime of the library. A [Projector] picks which
// entities of a frame are drawn, orders them back to front and transforms
// their meshes through a model, view and perspective projection built with
// mathgl.
//
// The camera is fixed at the world origin looking down -Z. Projected points
// are in output pixels with the origin at the top-left corner.
//
// Basic usage:
//
//	proj := scene.NewProjector(info, raycam.DefaultScale)
//	for _, p := range proj.Project(frame) {
//	    hull := silhouette.ConvexHull(p.Silhouette)
//	    // fill hull ...
//	}
package scene

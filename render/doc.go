// Package render composes the camera pipeline into finished images.
//
// A [Renderer] owns one instance of every stage: the rasterizer that turns
// ray streams into a color and depth raster, the projector and mesh library
// for entities, the silhouette filler and the label placer. Memo tables
// live inside these instances, so renderers never share state.
//
// Render re-decodes every buffered frame from oldest to newest into fresh
// buffers, which smooths the background over time, and then draws the
// entities of the newest frame only:
//
//	r, err := render.New(info, render.WithScale(4))
//	if err != nil {
//	    return err
//	}
//	res, err := r.Render(frames)
//	if err != nil {
//	    return err
//	}
//	_ = res.Image.SavePNG("frame.png")
package render

// Package raycam reconstructs camera images from a delta-encoded ray stream
// and overlays tracked entities with a minimal software 3-D pipeline.
//
// # Overview
//
// A game server streams compact ray frames: each frame carries a bit-packed
// buffer of (distance, alignment, material) samples, a cursor into a pixel
// scrambling table, and the entities currently in view. raycam decodes the
// samples into a color and depth raster, projects entity meshes on top of it
// and returns a finished RGBA image.
//
// # Quick Start
//
//	sess := session.New(transport)
//	if err := sess.Subscribe(info); err != nil {
//	    return err
//	}
//	_ = sess.SubmitFrame(frame)
//	res, err := sess.Frame()
//	if err != nil {
//	    return err
//	}
//	_ = res.Image.SavePNG("camera.png")
//
// # Architecture
//
// The library is organized leaf-first:
//   - wire: ray stream decoder with a 64-slot reference cache
//   - raster: scrambled block writes into the color and depth buffers
//   - scene: archetype meshes and perspective projection
//   - silhouette: convex hull fill with depth testing
//   - label: distance-scaled name tags
//   - render: the pipeline composing the stages above
//   - session: subscribe/frame/render lifecycle and movement commands
//   - transport/ws: websocket client feeding a session
//
// The raycamview command connects to a server or replays a recorded stream
// and writes PNG snapshots.
//
// This package holds the shared data model (frames, entities, camera info,
// pixmaps, depth buffers) and the package logger.
//
// # Coordinate System
//
// The camera sits at the world origin looking down -Z with +Y up. Screen
// coordinates have the origin at the top-left with Y increasing downward.
package raycam

// Version is the current version of the library.
const Version = "0.1.0"

// DefaultScale is the number of output pixels per ray cell along each axis.
const DefaultScale = 6

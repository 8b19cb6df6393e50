// Package cache provides the bounded memo tables used by the renderer.
//
// Each mesh library, silhouette filler and font source owns its own
// [Cache], so state never leaks between sessions:
//
//	meshes := cache.New[meshKey, *Mesh](256)
//	m := meshes.GetOrCreate(key, func() *Mesh { return build(key) })
//
// Entries are evicted least recently used first once the limit is exceeded.
// A Cache is safe for concurrent use and must not be copied after creation.
package cache

// Package cache provides the sharded LRU cache that keeps recently rendered
// images so that revisiting a view (undo, redo, switching back to a kind)
// does not recompute it.
//
//	c := cache.New[uint64, *Image](32, cache.Uint64Hasher)
//	c.Set(fingerprint, img)
//	img, ok := c.Get(fingerprint)
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

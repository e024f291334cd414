// Package cache provides a bounded, thread-safe LRU cache.
//
// tilegen uses it to keep derived read-only data, such as the permutation
// tables behind tileable noise, alive across renders without letting a
// document with many seeds grow memory without bound.
//
//	tables := cache.New[int64, *Table](64)
//	t := tables.GetOrCreate(seed, func() *Table { return build(seed) })
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

// Package scene models scene-by-scene video generation.
//
// Scenes are ordered by a dense 1-based number and generated strictly
// sequentially: later scenes may reference earlier ones, and an early
// failure must not silently drop scenes that already rendered. Each
// scene's outcome is persisted before the next scene starts, so the
// batch is resumable from the first unfinished scene. Scene batches
// never go through bounded fan-out.
package scene

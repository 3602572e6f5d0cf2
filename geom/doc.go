// Package geom provides the small amount of 3D math the preview pipeline
// needs: vectors, rotations, axis-aligned boxes and triangle meshes.
//
// Coordinates follow a left-handed, Y-up convention: +X is right, +Y is up
// and +Z points forward. Angles passed to Euler are in degrees.
package geom

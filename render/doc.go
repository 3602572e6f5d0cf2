// Package render is the offscreen backend used to capture previews.
//
// A [Device] hands out temporary [RenderTexture] targets and tracks which
// one is active. A [Rasterizer] projects world-space triangles through a
// perspective [View] and fills them into a target with gg, shading each
// face from directional lights. [Device.ReadPixels] copies the active
// target back into CPU memory, where a [Texture] decodes it into an
// *image.RGBA.
//
// Textures implement the gpucontext texture interfaces so that a GPU
// presenter can consume them without this package depending on one.
package render

// Package shaders holds the GLSL sources for the renderer. The SPIR-V
// binaries are built with glslc from the Vulkan SDK and loaded from disk
// at startup.
package shaders

//go:generate glslc basic.vert -o basic.vert.spv
//go:generate glslc basic.frag -o basic.frag.spv

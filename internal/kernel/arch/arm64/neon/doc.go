// Package neon implements byte shuffle kernels tiled for 128-bit NEON
// registers. Only the element sizes with a dedicated tile layout (2, 4, 8
// and 16 bytes) are served; every other size, and both bit transposes, are
// left to the next kernel family.
package neon

// Package grid provides the pixel-level substrate shared by imaging and the
// numerical Fourier cache.
//
// What & Why:
//
//	Grid describes an nx×ny pixelization of a field of view centred on the
//	origin. Map is a row-major buffer of per-pixel flux over a Grid plus the
//	Pulse (pixel kernel) that turns samples into a continuous image.
//	Transformer evaluates the centred 2-D discrete Fourier sums that link a
//	Map with a regular visibility grid, using gonum's dsp/fourier FFTs.
//
// Conventions:
//
//	Pixel centres:   x_i = (i − nx/2 + 1/2)·dx,  dx = fovx/nx
//	Frequencies:     u_k = (k − nx/2)/fovx
//	Storage:         Data()[j*nx + i] holds pixel (i, j)
//	Visibility sign: V(u,v) = Σ I(x,y)·exp(+2πi(ux+vy))
//
// Complexity:
//
//	NewMap: O(nx·ny); At/Set: O(1); Transform: O(nx·ny·log(nx·ny)).
package grid

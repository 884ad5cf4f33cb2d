// Package imaging turns models into pixelized intensity maps.
//
// Two paths, chosen by the model's traits:
//
//   - ImageAnalytic models are sampled at pixel centres:
//     F_ij = I(x_i, y_j)·dx·dy.
//   - Everything else is synthesized from visibilities: the model is
//     evaluated on the regular Fourier grid u_k = (k − nx/2)/fovx, the
//     centred inverse transform is applied (phase de-centring folded into
//     grid.Transformer), and the real part divided by nx·ny gives per-pixel
//     flux.
//
// Maps hold flux per pixel, so Σ map = flux for a resolved model. A
// Synthesizer owns its FFT plans and scratch and overwrites the destination
// fully, so repeated synthesis into the same buffer is idempotent.
package imaging

// Package generic implements the portable reference transposition kernels.
//
// Their output is the normative contract for every accelerated kernel: for
// any block and element size an accelerated kernel must produce the same
// bytes, or refuse the call with kernel.ErrUnsupported.
package generic

// Package shuffle binds the four transposition operations (byte shuffle,
// byte unshuffle, bit shuffle, bit unshuffle) to the fastest kernel family
// the host supports.
//
// Kernel families register themselves with the kernel registry from the
// architecture packages imported by this package. On first use a Dispatcher
// probes the CPU once, builds one candidate chain per operation in priority
// order, and keeps that binding for the rest of the process. A kernel that
// refuses a geometry is skipped for that call only; the portable reference
// kernel terminates every chain, so an operation never fails for lack of a
// kernel.
//
// Basic usage:
//
//	dst := make([]byte, len(src))
//	if _, err := shuffle.Shuffle(dst, src, 4); err != nil {
//		return err
//	}
package shuffle

// Package logoexport renders the brand logo set for the system app and the
// landing site.
//
// Two source rasters are used: the full logo (mark plus wordmark) and the
// icon-only logo (mark alone). Every entry of a fixed output table is produced
// by fitting one of them into the entry's box without distortion and
// centering it on a fully transparent canvas of exactly that size. Favicons
// ending in .ico are written as a single 32x32 frame. The package works
// entirely in memory apart from reading the sources and writing the outputs.
package logoexport

// Package platform provides the filesystem operations used when writing
// generated files: atomic replacement through a sibling temp file, and
// permission handling that is a no-op on Windows.
package platform

// Package container reads and writes the .atlas container: a zip
// archive holding exactly two entries, the coordinate chart document
// and the atlas image.
//
// The package moves raw bytes in and out of the archive. Interpreting
// the chart bytes is the chart package's job, and decoding the image
// bytes is the image codec's job; neither happens here.
package container

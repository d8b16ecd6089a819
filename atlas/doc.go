// Package atlas assembles and queries 2D texture atlases stored in the
// .atlas container format: a zip archive bundling an RGBA image with a
// coordinate chart that names sub-rectangles ("frames") of that image.
//
// Loading cross-validates the chart against the decoded image; an
// atlas only ever exists in a validated form. An assembled Atlas is
// immutable and safe for concurrent readers without locking. To change
// an atlas, build a new chart and assemble again.
package atlas

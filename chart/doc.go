// Package chart implements the coordinate chart of a texture atlas: the
// metadata document naming each sub-rectangle ("frame") of the atlas
// image and declaring the image's pixel dimensions.
//
// The chart is stored as a JSON document inside the .atlas container
// (see the container package). This package only deals with the
// metadata; cross-validation against the actual atlas image is the
// task of the atlas package.
package chart

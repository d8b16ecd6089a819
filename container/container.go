package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// Entry names inside the .atlas archive. These are fixed by the file
// format; the reader matches them exactly, case included.
const (
	ChartEntryName = "coordinate_charts.json"
	ImageEntryName = "atlas.png"
)

// EntryKind identifies one of the two entries of the container.
type EntryKind int

const (
	EntryChart EntryKind = iota
	EntryImage
)

func (k EntryKind) String() string {
	switch k {
	case EntryChart:
		return "coordinate chart"
	case EntryImage:
		return "atlas image"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

func (k EntryKind) entryName() string {
	switch k {
	case EntryChart:
		return ChartEntryName
	default:
		return ImageEntryName
	}
}

// ErrNotAnArchive reports that the byte stream is not a zip archive at
// all (as opposed to a zip archive with wrong contents).
var ErrNotAnArchive = errors.New("container: not a zip archive")

// MissingEntryError reports an archive that lacks one of the two
// expected entries.
type MissingEntryError struct {
	Kind EntryKind
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("container: archive has no %s entry (%s)", e.Kind, e.Kind.entryName())
}

// UnexpectedEntryError reports entries beyond the two the format
// defines. Extra entries are rejected rather than skipped: a container
// with stray members was not produced by a conforming writer, and
// silently accepting it would hide authoring bugs.
type UnexpectedEntryError struct {
	Names []string
}

func (e *UnexpectedEntryError) Error() string {
	return fmt.Sprintf("container: unexpected archive entries %q", e.Names)
}

// Read opens the byte stream as a zip archive and extracts the raw
// bytes of the chart entry and the image entry, in that order.
func Read(r io.ReaderAt, size int64) (chartData, imageData []byte, err error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, nil, fmt.Errorf("%w: %v", ErrNotAnArchive, err)
		}
		return nil, nil, fmt.Errorf("container: opening archive: %v", err)
	}

	var chartFile, imageFile *zip.File
	var extras []string
	for _, f := range zr.File {
		switch {
		case f.Name == ChartEntryName && chartFile == nil:
			chartFile = f
		case f.Name == ImageEntryName && imageFile == nil:
			imageFile = f
		default:
			// Repeated chart/image entries count as extras too.
			extras = append(extras, f.Name)
		}
	}
	if len(extras) > 0 {
		return nil, nil, &UnexpectedEntryError{Names: extras}
	}
	if chartFile == nil {
		return nil, nil, &MissingEntryError{Kind: EntryChart}
	}
	if imageFile == nil {
		return nil, nil, &MissingEntryError{Kind: EntryImage}
	}

	if chartData, err = readEntry(chartFile); err != nil {
		return nil, nil, err
	}
	if imageData, err = readEntry(imageFile); err != nil {
		return nil, nil, err
	}
	return chartData, imageData, nil
}

// ReadBytes is Read over an in-memory container.
func ReadBytes(data []byte) (chartData, imageData []byte, err error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// readEntry extracts one entry fully. Reading to the end also runs the
// zip CRC check, so corrupted entry data surfaces here.
func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("container: opening %s entry: %v", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("container: reading %s entry: %v", f.Name, err)
	}
	return data, nil
}

// Write packs the chart and image bytes into a .atlas archive on w.
//
// Entries are written uncompressed (as the format's reference writer
// does) in a fixed order with zeroed timestamps, so identical inputs
// produce a byte-identical archive.
func Write(w io.Writer, chartData, imageData []byte) error {
	zw := zip.NewWriter(w)
	entries := []struct {
		name string
		data []byte
	}{
		{ChartEntryName, chartData},
		{ImageEntryName, imageData},
	}
	for _, e := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.name,
			Method: zip.Store,
		})
		if err != nil {
			return fmt.Errorf("container: creating %s entry: %v", e.name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return fmt.Errorf("container: writing %s entry: %v", e.name, err)
		}
	}
	return zw.Close()
}

// WriteBytes is Write into a fresh byte slice.
func WriteBytes(chartData, imageData []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, chartData, imageData); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

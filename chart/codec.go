package chart

// This file contains the codec between the on-disk JSON document and
// the Chart type. The decoder works on the token stream rather than
// unmarshalling into a map: a Go map would lose the frame order and
// silently swallow duplicate keys, and the format wants both detected.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// Decode parses a coordinate chart document.
//
// The document is JSONC-tolerant on the way in: comments and trailing
// commas are stripped before parsing, so hand-authored charts may carry
// them. Encode always emits plain JSON.
func Decode(data []byte) (*Chart, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	if err := expectDelim(dec, '{', "top level"); err != nil {
		return nil, err
	}

	c := &Chart{frames: map[string]Frame{}}
	var haveWidth, haveHeight, haveFrames bool
	for dec.More() {
		key, err := expectKey(dec, "top level")
		if err != nil {
			return nil, err
		}
		switch key {
		case "width":
			if haveWidth {
				return nil, &MalformedError{Reason: `duplicate field "width"`}
			}
			haveWidth = true
			if c.Width, err = expectInt(dec, "width"); err != nil {
				return nil, err
			}
		case "height":
			if haveHeight {
				return nil, &MalformedError{Reason: `duplicate field "height"`}
			}
			haveHeight = true
			if c.Height, err = expectInt(dec, "height"); err != nil {
				return nil, err
			}
		case "frames":
			if haveFrames {
				return nil, &MalformedError{Reason: `duplicate field "frames"`}
			}
			haveFrames = true
			if err = decodeFrames(dec, c); err != nil {
				return nil, err
			}
		default:
			return nil, &MalformedError{Reason: fmt.Sprintf("unknown top-level field %q", key)}
		}
	}
	if err := expectDelim(dec, '}', "top level"); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &MalformedError{Reason: "trailing data after chart document"}
	}

	switch {
	case !haveWidth:
		return nil, &MalformedError{Reason: `missing required field "width"`}
	case !haveHeight:
		return nil, &MalformedError{Reason: `missing required field "height"`}
	case !haveFrames:
		return nil, &MalformedError{Reason: `missing required field "frames"`}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, &MalformedError{Reason: fmt.Sprintf("non-positive atlas dimensions %dx%d", c.Width, c.Height)}
	}
	return c, nil
}

func decodeFrames(dec *json.Decoder, c *Chart) error {
	if err := expectDelim(dec, '{', `"frames"`); err != nil {
		return err
	}
	for dec.More() {
		name, err := expectKey(dec, `"frames"`)
		if err != nil {
			return err
		}
		if _, ok := c.frames[name]; ok {
			return &DuplicateNameError{Name: name}
		}
		f, err := decodeFrame(dec, name)
		if err != nil {
			return err
		}
		if err := c.Add(f); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}', `"frames"`)
}

func decodeFrame(dec *json.Decoder, name string) (Frame, error) {
	f := Frame{Name: name}
	where := fmt.Sprintf("frame %q", name)
	if err := expectDelim(dec, '{', where); err != nil {
		return f, err
	}
	var haveX, haveY, haveW, haveH bool
	for dec.More() {
		key, err := expectKey(dec, where)
		if err != nil {
			return f, err
		}
		field := fmt.Sprintf("%s %q", where, key)
		switch key {
		case "x":
			if haveX {
				return f, &MalformedError{Reason: fmt.Sprintf("%s: duplicate field %q", where, key)}
			}
			haveX = true
			f.X, err = expectInt(dec, field)
		case "y":
			if haveY {
				return f, &MalformedError{Reason: fmt.Sprintf("%s: duplicate field %q", where, key)}
			}
			haveY = true
			f.Y, err = expectInt(dec, field)
		case "width":
			if haveW {
				return f, &MalformedError{Reason: fmt.Sprintf("%s: duplicate field %q", where, key)}
			}
			haveW = true
			f.Width, err = expectInt(dec, field)
		case "height":
			if haveH {
				return f, &MalformedError{Reason: fmt.Sprintf("%s: duplicate field %q", where, key)}
			}
			haveH = true
			f.Height, err = expectInt(dec, field)
		default:
			return f, &MalformedError{Reason: fmt.Sprintf("%s: unknown field %q", where, key)}
		}
		if err != nil {
			return f, err
		}
	}
	if err := expectDelim(dec, '}', where); err != nil {
		return f, err
	}
	if !haveX || !haveY || !haveW || !haveH {
		return f, &MalformedError{Reason: fmt.Sprintf("%s is missing one of x, y, width, height", where)}
	}
	return f, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, where string) error {
	tok, err := dec.Token()
	if err != nil {
		return &MalformedError{Reason: fmt.Sprintf("%s: %v", where, err)}
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return &MalformedError{Reason: fmt.Sprintf("%s: expected %q, got %v", where, want, tok)}
	}
	return nil
}

func expectKey(dec *json.Decoder, where string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", &MalformedError{Reason: fmt.Sprintf("%s: %v", where, err)}
	}
	key, ok := tok.(string)
	if !ok {
		return "", &MalformedError{Reason: fmt.Sprintf("%s: expected object key, got %v", where, tok)}
	}
	return key, nil
}

func expectInt(dec *json.Decoder, field string) (int, error) {
	tok, err := dec.Token()
	if err != nil {
		return 0, &MalformedError{Reason: fmt.Sprintf("%s: %v", field, err)}
	}
	num, ok := tok.(json.Number)
	if !ok {
		return 0, &MalformedError{Reason: fmt.Sprintf("%s: expected an integer, got %v", field, tok)}
	}
	n, err := num.Int64()
	if err != nil {
		return 0, &MalformedError{Reason: fmt.Sprintf("%s: expected an integer, got %v", field, num)}
	}
	return int(n), nil
}

// Encode serializes the chart as its on-disk JSON document. Frames are
// written in insertion order, so Decode(Encode(c)) reproduces c
// exactly, byte for byte across runs.
func Encode(c *Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the chart document to w.
func EncodeTo(w io.Writer, c *Chart) error {
	if c.Width <= 0 || c.Height <= 0 {
		return &MalformedError{Reason: fmt.Sprintf("non-positive atlas dimensions %dx%d", c.Width, c.Height)}
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "{\n    \"width\": %d,\n    \"height\": %d,\n    \"frames\": {", c.Width, c.Height)
	for i, name := range c.names {
		f := c.frames[name]
		if err := f.validate(); err != nil {
			return err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		quoted, err := json.Marshal(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(&buf, "\n        %s: {\"x\": %d, \"y\": %d, \"width\": %d, \"height\": %d}", quoted, f.X, f.Y, f.Width, f.Height)
	}
	if len(c.names) > 0 {
		buf.WriteString("\n    ")
	}
	buf.WriteString("}\n}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

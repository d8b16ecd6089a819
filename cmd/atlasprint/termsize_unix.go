//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

type termSize struct {
	Rows, Cols     uint
	XPixel, YPixel uint
}

// getTermSize asks the controlling terminal for its size. The ioctl
// also reports the window size in pixels where the terminal fills it
// in; many terminals leave it at zero.
func getTermSize() (termSize, error) {
	if f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_RDWR, 0666); err == nil {
		defer f.Close()
		if sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err == nil {
			return termSize{
				Rows:   uint(sz.Row),
				Cols:   uint(sz.Col),
				XPixel: uint(sz.Xpixel),
				YPixel: uint(sz.Ypixel),
			}, nil
		}
	}
	w, h, err := terminal.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return termSize{}, err
	}
	return termSize{Rows: uint(h), Cols: uint(w)}, nil
}

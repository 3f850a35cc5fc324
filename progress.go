package main

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

type Bars struct {
	Files  *progressbar.ProgressBar
	Frames *progressbar.ProgressBar
}

func NewBars(totalFiles int, visible bool) *Bars {
	theme := progressbar.Theme{
		Saucer:        "=",
		SaucerHead:    ">",
		SaucerPadding: " ",
		BarStart:      "[",
		BarEnd:        "]",
	}
	var w io.Writer = os.Stderr
	mk := func(total int, desc string) *progressbar.ProgressBar {
		return progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetVisibility(visible),
			progressbar.OptionSetTheme(theme),
			progressbar.OptionSetDescription(desc),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}
	return &Bars{
		Files:  mk(totalFiles, "[GPX] чтение"),
		Frames: mk(0, "[GIF] кадры"),
	}
}

func (b *Bars) IncFile()          { _ = b.Files.Add(1) }
func (b *Bars) SetFrame(i int)    { _ = b.Frames.Set(i) }
func (b *Bars) FramesTotal(n int) { b.Frames.ChangeMax(n) }

func (b *Bars) Done() {
	_ = b.Files.Finish()
	_ = b.Frames.Finish()
}

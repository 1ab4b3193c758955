package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// attemptBar renders crack progress on stderr as a single
// "[*] Attempted (N): <candidate>" line with a running counter and a
// preview of the most recently tested candidate. It implements
// cracker.Progress.
type attemptBar struct {
	p   *mpb.Progress
	bar *mpb.Bar

	mu     sync.Mutex
	latest string
}

func newAttemptBar() *attemptBar {
	a := &attemptBar{}
	a.p = mpb.New(mpb.WithOutput(os.Stderr))
	a.bar = a.p.New(0,
		mpb.NopStyle(),
		mpb.PrependDecorators(
			decor.Name("[*] Attempted ("),
			decor.CurrentNoUnit("%d"),
			decor.Name("): "),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				a.mu.Lock()
				defer a.mu.Unlock()
				return a.latest
			}),
		),
	)
	return a
}

// Attempted records a batch notification from the cracker. Safe for
// concurrent use by many workers.
func (a *attemptBar) Attempted(total uint64, latest []byte) {
	a.mu.Lock()
	a.latest = candidatePreview(latest)
	a.mu.Unlock()
	a.bar.SetCurrent(int64(total))
}

// Finish removes the bar so the final status line from the logger is
// the last thing on screen.
func (a *attemptBar) Finish() {
	a.bar.Abort(true)
	a.p.Wait()
}

// candidatePreview keeps the first 30 printable ASCII bytes of a
// candidate, left-justified so the line width stays stable.
func candidatePreview(candidate []byte) string {
	if len(candidate) > 30 {
		candidate = candidate[:30]
	}
	out := make([]byte, 0, 30)
	for _, ch := range candidate {
		if ch >= 0x20 && ch < 0x7f {
			out = append(out, ch)
		}
	}
	return fmt.Sprintf("%-30s", out)
}

package render

import (
	"fmt"
	"strings"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/record"
)

// Status tags a Result.
type Status int

const (
	// StatusOK means PNG holds the rendered status image.
	StatusOK Status = iota
	// StatusFallback means the render failed and PNG holds the error image.
	StatusFallback
)

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "fallback"
}

// Result is the outcome of RenderOrFallback. PNG is always set.
type Result struct {
	Status Status
	PNG    []byte
	// Err and Message describe the failure when Status is StatusFallback.
	Err     error
	Message string
}

// OK reports whether the status image rendered.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// RenderOrFallback is the only recovery point of a render: any failure
// while composing, including a panic, becomes the fallback image carrying
// the error message.
func RenderOrFallback(recs []record.Server, opts Options) Result {
	png, err := composeGuarded(recs, opts)
	if err != nil {
		return Failure(err, opts.Fonts)
	}
	return Result{Status: StatusOK, PNG: png}
}

// Failure renders the fallback image for err. Callers that fail before a
// render starts (fetching records, say) use it to answer with an image too.
func Failure(err error, fonts *FontSet) Result {
	msg := strings.TrimPrefix(errors.OneLine(err), "✗ ")
	png, ferr := RenderFallback(msg, fonts)
	if ferr != nil {
		png = blankFallback()
	}
	return Result{Status: StatusFallback, PNG: png, Err: err, Message: msg}
}

func composeGuarded(recs []record.Server, opts Options) (png []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			png = nil
			err = errors.New(errors.ErrRender, fmt.Sprintf("Render panicked: %v", r), "")
		}
	}()
	return Compose(recs, opts)
}

package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successBanner = color.New(color.FgHiWhite, color.BgHiGreen, color.Italic)
	successText   = color.New(color.FgGreen, color.Italic)
	errorBanner   = color.New(color.FgHiWhite, color.BgHiRed, color.Bold)
	errorText     = color.New(color.FgRed, color.Bold)
)

// Response prints the outcome of a command as a coloured banner followed by the
// message. A command may print several responses; the last one decides IsSuccess.
type Response struct {
	out     io.Writer
	message string
	isError bool
}

func NewResponse(out io.Writer) *Response {
	return &Response{out: out}
}

func (r *Response) Success(message string) {
	r.message = message
	r.isError = false
	r.print()
}

func (r *Response) Error(message string) {
	r.message = message
	r.isError = true
	r.print()
}

func (r *Response) IsSuccess() bool {
	return !r.isError
}

func (r *Response) print() {
	if r.isError {
		fmt.Fprintf(r.out, "\n%s\n", errorBanner.Sprint("Error!!"))
		fmt.Fprintln(r.out, errorText.Sprint(r.message))
		return
	}
	fmt.Fprintf(r.out, "\n%s\n", successBanner.Sprint("Success!!"))
	fmt.Fprintln(r.out, successText.Sprint(r.message))
}

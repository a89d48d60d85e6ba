// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/siemens/ipv4ep/types"
)

// renderer renders the terminal display, based on qualified endpoint
// information passed to its Render method.
type renderer struct {
	w       io.Writer
	spinner *spinner
}

// newRenderer returns a renderer rendering to the specified io.Writer, with a
// running spinner for endpoints in verification.
func newRenderer(w io.Writer, spinnerInterval time.Duration) *renderer {
	sp := newSpinner()
	sp.Start(spinnerInterval)
	return &renderer{
		w:       w,
		spinner: sp,
	}
}

// Stop the renderer's background ticker.
func (r *renderer) Stop() {
	r.spinner.Stop()
}

// Render the given qualified endpoints, which are expected to be already in
// endpoint order.
func (r *renderer) Render(qes []types.QualifiedEndpointValue) {
	if len(qes) == 0 {
		fmt.Fprintln(r.w, "submitting endpoints...")
		return
	}
	// Align the verdict reasons by the longest endpoint text.
	maxlen := 0
	for _, qe := range qes {
		if l := len(qe.EP.String()); l > maxlen {
			maxlen = l
		}
	}
	for _, qe := range qes {
		text := fmt.Sprintf("%-*s", maxlen, qe.EP.String())
		switch qe.Quality {
		case types.Unverified:
			fmt.Fprintf(r.w, " ? %s", text)
		case types.Verifying:
			fmt.Fprint(r.w, verifyingStyle.Styled(" "+r.spinner.Spinner()+text))
		case types.Verified:
			fmt.Fprint(r.w, validStyle.Styled(" ✔ "+text))
		case types.Invalid:
			fmt.Fprint(r.w, invalidStyle.Styled(" × "+text))
			if err := qe.Err(); err != nil {
				fmt.Fprintf(r.w, "  %s", err)
			}
		}
		fmt.Fprintln(r.w)
	}
}

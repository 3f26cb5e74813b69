package panicutil

import (
	"github.com/sourcegraph/conc/panics"
)

// Call runs the function, recovering from panics and returning them as errors.
// If the function returns normally, Call returns nil.
// If the function panics, Call returns the recovered panic value as an error
// as *panics.ErrRecovered, including the stack at the panic site.
func Call(f func()) error {
	var catcher panics.Catcher
	catcher.Try(f)
	if recovered := catcher.Recovered(); recovered != nil {
		return recovered.AsError()
	}
	return nil
}

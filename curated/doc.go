// This file is part of dtmovie.
//
// dtmovie is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dtmovie is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dtmovie.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function, which takes a
// formatting pattern and placeholder values in the same way as fmt.Errorf().
//
// The pattern is what identifies a curated error. Packages in dtmovie that
// raise a class of error worth reacting to declare the pattern as a named
// constant. For example, the inputs package declares:
//
//	const PrematureEnd = "premature movie end: %d + %d > %d"
//
// and callers test for it with Is() or Has():
//
//	if curated.Is(err, inputs.PrematureEnd) {
//		...
//	}
//
// Is() only checks the outermost error. Has() checks the entire chain, where
// the chain is formed by passing a curated error as one of the values of
// another call to Errorf().
//
//	e := curated.Errorf(inputs.PrematureEnd, 8, 8, 10)
//	f := curated.Errorf("movie: %v", e)
//
//	curated.Is(f, inputs.PrematureEnd)  // false
//	curated.Has(f, inputs.PrematureEnd) // true
//
// Curated errors also implement Unwrap() so that the errors package in the
// standard library can see any error value (curated or not) that was used as
// a placeholder value.
//
// The Error() function normalises the message so that adjacent duplicate
// parts of the chain are removed. A part is a sub-string separated by ": ".
// This means that a function does not need to worry about whether its caller
// will add the same prefix. Wrapping "dtm: bad magic" with the pattern
// "dtm: %v" results in:
//
//	dtm: bad magic
//
// and not:
//
//	dtm: dtm: bad magic
package curated

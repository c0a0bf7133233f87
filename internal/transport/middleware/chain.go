package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines middleware so that the first one given is the outermost:
// Chain(a, b)(h) is a(b(h)).
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				final = mws[i](final)
			}
		}
		return final
	}
}

// Stack is an ordered middleware list that can be extended conditionally
// while a router is being assembled.
type Stack []Middleware

// With returns a copy of s extended with mws.
func (s Stack) With(mws ...Middleware) Stack {
	out := make(Stack, 0, len(s)+len(mws))
	out = append(out, s...)
	return append(out, mws...)
}

// When appends mw only if cond holds.
func (s Stack) When(cond bool, mw Middleware) Stack {
	if !cond {
		return s
	}
	return s.With(mw)
}

// Then wraps h with the whole stack.
func (s Stack) Then(h http.Handler) http.Handler {
	return Chain(s...)(h)
}

package connection

import "net/http"

// SendFunc executes one HTTP request against the backend and returns the raw
// response. It is the base unit threaded through the middleware chain; the
// request context governs cancellation.
type SendFunc func(req *http.Request) (*http.Response, error)

// Middleware intercepts and optionally transforms backend requests and
// responses. Each Middleware receives the next SendFunc in the chain and
// returns a new SendFunc that wraps it. Middlewares are applied
// outermost-first: the first middleware passed to [WithMiddleware] is the
// outermost wrapper, the first to see a request and the last to see its
// response.
type Middleware func(next SendFunc) SendFunc

// buildChain constructs the linear middleware chain. The base function calls
// the HTTP client directly; middlewares are applied in reverse so that the
// first entry becomes the outermost wrapper.
func buildChain(client *http.Client, middlewares []Middleware) SendFunc {
	var chain SendFunc = client.Do
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}
	return chain
}

// chainDoer adapts a SendFunc to the Do interface the request helpers expect.
type chainDoer struct {
	send SendFunc
}

func (d chainDoer) Do(req *http.Request) (*http.Response, error) {
	return d.send(req)
}

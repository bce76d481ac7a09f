package httpfetch

import "context"

// FetchXMLOrFallback fetches primaryPath expecting XML; if the response is
// HTML instead (the catalogue's "expected XML got HTML" signal, §4.1), or the
// primary fetch fails, it retries fallbackPath and returns that result. The
// returned result is not guaranteed to be XML: when the fallback also answers
// with HTML, that HTML result is returned without an error, so callers check
// Result.Kind. An empty fallbackPath disables the retry.
func (c *Client) FetchXMLOrFallback(ctx context.Context, primaryPath, fallbackPath string) (*Result, error) {
	result, err := c.Fetch(ctx, primaryPath)
	if err != nil {
		if fallbackPath == "" {
			return nil, err
		}
		return c.Fetch(ctx, fallbackPath)
	}
	if result.Kind == KindXML {
		return result, nil
	}
	if fallbackPath == "" {
		return result, nil
	}
	fallback, err := c.Fetch(ctx, fallbackPath)
	if err != nil {
		return nil, err
	}
	return fallback, nil
}

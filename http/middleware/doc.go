/*
The middleware package defines what a middleware is in reqbody, the BodyParser middleware
and a set of basic middlewares to chain it with.

The available middlewares are:
- BodyParser.Adapter
- CORS
- ForceHTTPS
- InjectIPAddress
- LogRequest
- RateLimit
- ReportPanic
- RequestID

A BodyParser is configured by chaining its With methods,
each returning a new *BodyParser:

	bp, err := middleware.NewBodyParser(container.Default()).
		WithParser("application/yaml", parser.YAMLID)
	if err != nil {
		return err
	}

	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.RateLimit(middleware.NewVisitors(5, 20)),
		bp.WithLogger(log).Adapter(),
	}

Handlers further down the chain read the parsed body with reqbody.ParsedBodyFromContext.
*/
package middleware

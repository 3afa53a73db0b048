/*
Package router routes HTTP requests to handlers through a thin wrapper around [mux.Router].

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
the middlewares set with OnEveryRequest
and any middlewares added to the Route are called in the order they appear.

Registering a BodyParser with OnEveryRequest
means every handler can read the parsed body of its request.
*/
package router

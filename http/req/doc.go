/*
Package req copies the payload of an HTTP request into application structs.

Bind reads the parsed body a middleware.BodyParser attached to the request,
so it works the same whichever parser decoded the body: JSON, YAML or form data.
BindQuery reads query parameters.
Either way, req expects a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct:
"json" for bodies, "schema" for query parameters.
Second, for validating the payload's data meets requirements: "validate".

Errors are translated to reqbody sentinel errors
in order to provide a consistent interface for issues that arise across encoding types.
*/
package req

/*
Package parser defines how a raw HTTP request body becomes a structured value.

A [Parser] turns the text of a request body into one of three shapes:

  - nil, meaning there is nothing to attach
  - a mapping, e.g., map[string]any or [*Object]
  - a sequence, e.g., []any

A Parser fails with a [*DecodeError] when the text cannot be read in its format.
An empty body is never an error; it parses to nil.

The package ships three implementations:

  - [JSON] for application/json
  - [YAML] for application/yaml
  - [Form] for application/x-www-form-urlencoded

Each one has an identifier ([JSONID], [YAMLID], [FormID])
under which it is provided by [github.com/xy-planning-network/reqbody/container.Default].
*/
package parser

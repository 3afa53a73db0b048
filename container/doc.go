/*
Package container resolves components by identifier.

A [Resolver] answers two questions about an identifier:
whether something is provided under it and what that something is.
The body-parsing middleware asks the first question when a parser is registered
and the second when a request arrives.

[Container] is the Resolver shipped with reqbody.
A Container cannot be mutated once constructed;
[With] derives a new one from a parent.

	c := container.With(container.Default(),
		container.Instance("parser.csv", csvParser),
		container.Lazy("parser.msgpack", newMsgpackParser),
	)
*/
package container

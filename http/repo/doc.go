/*

Package repo derives RESTful routes from a repository -
an object whose conventionally-named methods map to verbs and paths.

A repository opts into operations by implementing the single-method
interfaces Creator, Lister, Getter, Updater, Patcher, and Deleter.
Register inspects which of the six an instance implements
and registers one route per present method against a fixed table:

	create -> POST   /{base}
	list   -> GET    /{base}
	get    -> GET    /{base}/{id}
	update -> PUT    /{base}/{id}
	patch  -> PATCH  /{base}/{id}
	delete -> DELETE /{base}/{id}

A Config attaches per-operation schemas and middleware
and overrides the base path or id parameter name.
Left empty, the base path derives from the type name
with the "Repository" suffix stripped and lower-cased
(ProductRepository registers under "product");
supply WithNamer when that convention does not fit.

*/
package repo

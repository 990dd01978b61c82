/*
Package navbind binds interactive elements of a document to navigation targets.

A Binding pairs a trigger identifier with an absolute path. On Initialize, the
binder looks every trigger up in the injected document and registers an
activation listener that asks the injected navigator to navigate to the bound
path. Nothing navigates until a trigger is activated.

# Concept

The binder owns neither the document nor the navigation. Both are ports
(see pkg/ports) implemented by the host: an in-memory document in tests, a
parsed HTML page served over HTTP, or an MCP tool surface. This keeps the
component testable without a rendering environment and makes the moment of
initialization an explicit call instead of an ambient page-load callback.

# Usage

	doc := memory.NewDocument("signUp", "logIn")
	nav := memory.NewNavigator()

	b := navbind.New(nav)
	if err := b.Initialize(ctx, doc); err != nil {
		log.Printf("some triggers were not bound: %v", domain.MissingTriggers(err))
	}

	doc.Dispatch(ctx, "signUp", domain.EventClick) // nav.Last() == "/user/signup"

# Missing triggers

By default initialization is best-effort: a missing trigger is logged and
returned as a *domain.ElementNotFoundError while the remaining bindings are
still registered. WithPolicy(domain.PolicyFailFast) stops at the first one.
Initialize runs once; later calls return domain.ErrAlreadyBound.
*/
package navbind

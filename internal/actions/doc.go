// Package actions is the dispatch layer of p4bridge: each user-facing
// Perforce action validates its preconditions, builds one fixed command
// line with the target path safely quoted, invokes the command-execution
// layer, and branches on the result to decide a UI effect.
//
// No action performs more than one external invocation, except Login,
// which runs a logout followed by a credential-set invocation.
//
// The OnBeforeSave/OnAfterSave hooks adapt the same actions to
// host-driven save events, gated by the AutoOpen/AutoAdd settings; hook
// failures are logged and never block the host's save operation.
package actions

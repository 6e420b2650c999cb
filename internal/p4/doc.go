// Package p4 is the command-execution layer of p4bridge.
//
// The Runner shells out to the p4 binary with a working directory and
// environment derived from the active file: the directory containing the
// file becomes the child's cwd, and the nearest .p4config in the file's
// ancestry (see the p4config package) is overlaid onto the process
// environment. Results are classified by stderr presence rather than
// exit status; see Runner.Run for the rationale.
//
// On top of the Runner, the package provides workspace introspection
// (ClientRoot, CurrentUser, IsInDepot) and a parser for `p4 opened`
// listings (ParseOpened).
package p4

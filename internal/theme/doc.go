// Package theme owns the light/dark preference of a client session.
//
// A Controller reads the persisted mode from a prefs.Store once, projects it
// onto a Scope (the style root every view renders from) and writes it back on
// every toggle. Views never consult the controller for colors; they render
// from the scope.
//
// Integration example:
//
//	root := theme.NewStyleRoot(renderer, theme.ResolveOptions{Term: pty.Term})
//	ctl := theme.NewController(prefs.Namespace(store, clientKey), root,
//		theme.WithDefault(theme.Dark), theme.WithLogger(logger))
//	ctl.Initialize(ctx) // before the first frame
//	model := tui.New(profile, ctl, root, tui.Options{Context: ctx})
package theme

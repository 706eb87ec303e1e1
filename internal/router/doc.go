package router

// Package router owns the session and view state of the application. The
// State is changed only through the transition methods of Router, and every
// view entry advances a generation counter so that delayed results can check
// whether the view that requested them is still current.

package model

// Package model defines the classroom domain: users and their roles, courses,
// lessons, progress records, the set of views the router can show, and the
// status of form submissions. Values here carry no behavior that touches the
// network; they are shared by the gateway, the loaders and the UI.

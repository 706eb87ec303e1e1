package rolegate

// Package rolegate shows or hides UI affordances according to the signed-in
// user's role. It is presentation only and grants no access by itself.

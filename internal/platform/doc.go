package platform

// Package platform contains integration with external video tooling: parsing
// video and playlist references, YouTube metadata lookup, playlist expansion
// via ytdlp, and opening links in the system browser.

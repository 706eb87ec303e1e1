package gateway

// Package gateway is the thin request/response layer over the remote auth
// provider and the hierarchical document store. Every other component reads
// and writes through the Auth and Store interfaces declared here.
//
// Two backends are provided: an in-memory one used by the offline demo and
// by tests, and a Firebase one that talks to Cloud Firestore and the Google
// Identity Toolkit.

// Package httpapi exposes the detection orchestrator over plain
// net/http, following the router/CORS/body-limit shape of
// axum-backend's main.rs and the respondJSON/respondError handler idiom
// of a Go HTTP-handler teacher example. No router library is used: the
// corpus reaches for net/http's own ServeMux everywhere a Go HTTP
// surface appears.
package httpapi

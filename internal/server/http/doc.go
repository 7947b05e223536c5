// Package httpserver exposes the id service over HTTP/JSON.
//
// Routes:
//
//	GET  /v1/healthz          {"status":"ok"}
//	GET  /v1/node             {"workerId":3,"datacenterId":1,"epochMs":...}
//	GET  /v1/ids?count=N      {"ids":["...", ...]}  (POST is accepted too)
//	GET  /v1/ids/{id}         decoded fields of id
//
// Ids are rendered as decimal strings so JavaScript clients keep full
// precision. A clock regression maps to 503 with Retry-After.
package httpserver

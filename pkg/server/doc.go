// Package server serves rendering over HTTP.
//
// Routes:
//
//	POST /render   body is a YAML or JSON document; responds with its markup
//	GET  /healthz  liveness probe
//	GET  /metrics  Prometheus exposition, when a Gatherer is configured
//
// Decode and render failures respond 400 with the JSON form of the coded
// error:
//
//	{"code":"X011","category":"document","message":"Invalid document structure",
//	 "detail":"unknown key \"kids\" (expected tag, attrs or children)",
//	 "location":{"file":"<request>","line":2,"column":1}, ...}
//
// Bodies over MaxBodyBytes respond 413.
//
// The router is chi; Handler returns it for mounting elsewhere:
//
//	r := chi.NewRouter()
//	r.Mount("/vxml", server.New(server.DefaultConfig()).Handler())
package server
